// Package flags matches unrecognized command-line flags against a
// resolved schema to synthesize additional key=value property strings.
package flags

import (
	"strings"

	"github.com/klynch/notionctl/internal/schema"
)

// ExtractProperties scans raw argument tokens for --flag patterns that
// are not in the known-flags set, matches each flag name against the
// schema, and emits "CanonicalName=value" strings for the matches. The
// token following a matched flag is consumed as its value. Unmatched
// flags are silently ignored for the surrounding command layer to
// validate or reject.
func ExtractProperties(argv []string, known map[string]bool, sm schema.Map) []string {
	var properties []string

	for i := 0; i < len(argv); i++ {
		token := argv[i]

		if token == "--" {
			break
		}

		if !strings.HasPrefix(token, "--") {
			continue
		}

		name := strings.TrimPrefix(token, "--")
		if name == "" || known[name] {
			continue
		}

		// --flag=value form carries its value inline
		if flag, value, found := strings.Cut(name, "="); found {
			if known[flag] {
				continue
			}

			if entry, ok := matchSchema(flag, sm); ok {
				properties = append(properties, entry.Name+"="+value)
			}

			continue
		}

		if i+1 >= len(argv) {
			break
		}

		if entry, ok := matchSchema(name, sm); ok {
			properties = append(properties, entry.Name+"="+argv[i+1])
			i++
		}
	}

	return properties
}

// matchSchema resolves a kebab-case flag name to a schema entry by
// trying the exact name, then kebab-to-space conversion. Lookup is
// case-insensitive, which also covers title-cased property names.
func matchSchema(flag string, sm schema.Map) (schema.Entry, bool) {
	if entry, ok := sm.Lookup(flag); ok {
		return entry, true
	}

	spaced := strings.ReplaceAll(flag, "-", " ")
	if entry, ok := sm.Lookup(spaced); ok {
		return entry, true
	}

	return schema.Entry{}, false
}
