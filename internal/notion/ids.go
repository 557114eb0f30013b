package notion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var bareIDPattern = regexp.MustCompile(`[0-9a-fA-F]{32}`)

// NormalizeID canonicalizes a page, block, or data source identifier
// into dashed UUID form. It accepts dashed UUIDs, bare 32-hex-char IDs,
// and full workspace URLs with a trailing ID.
func NormalizeID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty identifier")
	}

	if id, err := uuid.Parse(trimmed); err == nil {
		return id.String(), nil
	}

	// Pasted URLs carry the bare ID as the last 32 hex characters
	matches := bareIDPattern.FindAllString(trimmed, -1)
	if len(matches) > 0 {
		bare := matches[len(matches)-1]

		id, err := uuid.Parse(bare)
		if err != nil {
			return "", fmt.Errorf("invalid identifier %q: %w", raw, err)
		}

		return id.String(), nil
	}

	return "", fmt.Errorf("invalid identifier %q: expected a UUID or workspace URL", raw)
}
