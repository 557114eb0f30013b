// Package cache provides a small file-based TTL cache used to avoid
// re-fetching data source schemas within short-lived command sequences.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrMiss is returned when a key is absent or its entry has expired.
var ErrMiss = errors.New("cache miss")

// Cache defines the interface for local cache operations
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Cleanup(ctx context.Context) error
}

// Entry records metadata for a stored value
type Entry struct {
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Size      int64     `json:"size"`
}

// FileCache implements Cache on the filesystem, one data and one meta file
// per key, keyed by the SHA-256 of the logical key.
type FileCache struct {
	directory  string
	defaultTTL time.Duration
	mu         sync.RWMutex
}

// NewFileCache creates a new file-based cache rooted at directory
func NewFileCache(directory string, defaultTTL time.Duration) (*FileCache, error) {
	if strings.HasPrefix(directory, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}

		directory = filepath.Join(home, directory[2:])
	}

	if err := os.MkdirAll(directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &FileCache{
		directory:  directory,
		defaultTTL: defaultTTL,
	}, nil
}

// Get retrieves data from the cache, returning ErrMiss for absent or
// expired entries. Expired entries are removed on read.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filePath := c.dataPath(key)
	metaPath := c.metaPath(key)

	metaData, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, ErrMiss
	}

	var entry Entry
	if err := json.Unmarshal(metaData, &entry); err != nil {
		return nil, ErrMiss
	}

	if time.Now().After(entry.ExpiresAt) {
		os.Remove(filePath)
		os.Remove(metaPath)

		return nil, ErrMiss
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, ErrMiss
	}

	return data, nil
}

// Set stores data with the given TTL (zero means the cache default)
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	entry := Entry{
		Key:       key,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
		Size:      int64(len(data)),
	}

	filePath := c.dataPath(key)
	metaPath := c.metaPath(key)

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache data: %w", err)
	}

	metaData, err := json.Marshal(entry)
	if err != nil {
		os.Remove(filePath)
		return fmt.Errorf("failed to marshal cache metadata: %w", err)
	}

	if err := os.WriteFile(metaPath, metaData, 0600); err != nil {
		os.Remove(filePath)
		return fmt.Errorf("failed to write cache metadata: %w", err)
	}

	return nil
}

// Delete removes an entry, ignoring missing files
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	os.Remove(c.dataPath(key))
	os.Remove(c.metaPath(key))

	return nil
}

// Clear removes all entries from the cache directory
func (c *FileCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(c.directory)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			os.Remove(filepath.Join(c.directory, entry.Name()))
		}
	}

	return nil
}

// Cleanup removes expired entries
func (c *FileCache) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(c.directory)
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	now := time.Now()

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta") {
			continue
		}

		metaPath := filepath.Join(c.directory, entry.Name())

		metaData, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var cacheEntry Entry
		if err := json.Unmarshal(metaData, &cacheEntry); err != nil {
			continue
		}

		if now.After(cacheEntry.ExpiresAt) {
			base := strings.TrimSuffix(entry.Name(), ".meta")
			os.Remove(filepath.Join(c.directory, base+".data"))
			os.Remove(metaPath)
		}
	}

	return nil
}

func (c *FileCache) dataPath(key string) string {
	return filepath.Join(c.directory, hashKey(key)+".data")
}

func (c *FileCache) metaPath(key string) string {
	return filepath.Join(c.directory, hashKey(key)+".meta")
}

func hashKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
