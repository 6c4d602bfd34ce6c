package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
)

// File is a Cache persisted to a directory, one JSON file per key. Keys are
// hashed to file names, so arbitrary query strings are safe. Intended for
// CLI use where responses should survive the process.
type File struct {
	fs     afero.Fs
	dir    string
	logger hclog.Logger
	now    func() time.Time
}

// FileConfig configures a file cache.
type FileConfig struct {
	// Fs is the filesystem to store entries on. Defaults to the OS
	// filesystem.
	Fs afero.Fs

	// Dir is the directory entries live in. Required.
	Dir string

	Logger hclog.Logger
}

type fileEntry struct {
	Key     string    `json:"key"`
	Expires time.Time `json:"expires"`
	Body    []byte    `json:"body"`
}

// NewFile creates a file cache, creating the directory if needed.
func NewFile(cfg FileConfig) (*File, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	if err := cfg.Fs.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &File{
		fs:     cfg.Fs,
		dir:    cfg.Dir,
		logger: cfg.Logger.Named("file-cache"),
		now:    time.Now,
	}, nil
}

// Get returns the stored body for key if its entry file exists and is still
// fresh. Stale entry files are removed.
func (f *File) Get(key string) ([]byte, bool) {
	path := f.path(key)

	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, false
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		f.logger.Warn("dropping unreadable cache entry", "path", path, "error", err)
		_ = f.fs.Remove(path)
		return nil, false
	}

	if f.now().After(entry.Expires) {
		_ = f.fs.Remove(path)
		return nil, false
	}
	return entry.Body, true
}

// Set stores body under key. Write failures are logged and swallowed:
// caching is best effort and must never fail the query that produced the
// body.
func (f *File) Set(key string, body []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	entry := fileEntry{
		Key:     key,
		Expires: f.now().Add(ttl),
		Body:    body,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		f.logger.Warn("failed to encode cache entry", "key", key, "error", err)
		return
	}

	if err := afero.WriteFile(f.fs, f.path(key), data, 0o644); err != nil {
		f.logger.Warn("failed to write cache entry", "key", key, "error", err)
	}
}

// path derives the entry file for a key.
func (f *File) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(f.dir, hex.EncodeToString(sum[:])+".json")
}
