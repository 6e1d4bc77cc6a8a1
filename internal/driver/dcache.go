package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"effectlint/internal/analysis"
	"effectlint/internal/finding"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores analysis reports on disk by CacheKey. Safe for
// concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the stored form of one report.
type DiskPayload struct {
	Schema uint16
	Report analysis.Report
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app or ~/.cache/app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens the cache rooted at dir, creating it.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := key.String()
	return filepath.Join(c.dir, "reports", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a report.
func (c *DiskCache) Put(key Digest, report analysis.Report) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&DiskPayload{Schema: diskCacheSchemaVersion, Report: report}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads a report. A missing entry or one written by another schema
// version is a miss.
func (c *DiskCache) Get(key Digest) (analysis.Report, bool, error) {
	if c == nil {
		return analysis.Report{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return analysis.Report{}, false, nil
		}
		return analysis.Report{}, false, err
	}
	var payload DiskPayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return analysis.Report{}, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return analysis.Report{}, false, nil
	}
	r := payload.Report
	if r.Findings == nil {
		r.Findings = []finding.Finding{}
	}
	if r.Suggestions == nil {
		r.Suggestions = []finding.Suggestion{}
	}
	return r, true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
