package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cacheVersion invalidates renders produced by older pipeline revisions.
const cacheVersion = "render-v1"

// RenderCache manages cached audio renders of generated MIDI files
type RenderCache struct {
	dir string
}

// CachedRender represents a cached audio render
type CachedRender struct {
	AudioPath string
	CacheKey  string
	CachedAt  time.Time
}

// NewRenderCache creates a new render cache in the repository's .cache
// directory
func NewRenderCache() (*RenderCache, error) {
	cacheDir, err := findRepoCacheDir()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &RenderCache{dir: cacheDir}, nil
}

// findRepoCacheDir finds or creates .cache/render in the repository root
func findRepoCacheDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working dir: %w", err)
	}

	// Walk up looking for go.mod (repo root marker)
	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return filepath.Join(dir, ".cache", "render"), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root, use current directory
			cwd, _ := os.Getwd()
			return filepath.Join(cwd, ".cache", "render"), nil
		}
		dir = parent
	}
}

// Key derives a cache key from everything that shapes the rendered audio:
// the MIDI bytes, the soundfont, the target format and the synth settings.
func Key(midiData []byte, soundFont, format string, gain float64, sampleRate int) string {
	hasher := sha256.New()
	hasher.Write(midiData)
	fmt.Fprintf(hasher, "|%s|%s|%.3f|%d", soundFont, format, gain, sampleRate)
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}

// Get retrieves a cached render for the given key and format
func (c *RenderCache) Get(key, format string) (*CachedRender, bool) {
	cacheSubdir := filepath.Join(c.dir, key)

	info, err := os.Stat(cacheSubdir)
	if err != nil || !info.IsDir() {
		return nil, false
	}

	// Renders from older pipeline revisions are stale
	versionPath := filepath.Join(cacheSubdir, ".version")
	versionData, err := os.ReadFile(versionPath)
	if err != nil || string(versionData) != cacheVersion {
		return nil, false
	}

	audioPath := filepath.Join(cacheSubdir, "render."+format)
	if !fileExists(audioPath) {
		return nil, false
	}

	return &CachedRender{
		AudioPath: audioPath,
		CacheKey:  key,
		CachedAt:  info.ModTime(),
	}, true
}

// Put stores a rendered audio file in the cache
func (c *RenderCache) Put(key, format, audioPath string) (*CachedRender, error) {
	cacheSubdir := filepath.Join(c.dir, key)

	if err := os.MkdirAll(cacheSubdir, 0755); err != nil {
		return nil, fmt.Errorf("create cache subdir: %w", err)
	}

	dst := filepath.Join(cacheSubdir, "render."+format)
	if err := copyFile(audioPath, dst); err != nil {
		return nil, fmt.Errorf("cache render: %w", err)
	}

	versionPath := filepath.Join(cacheSubdir, ".version")
	if err := os.WriteFile(versionPath, []byte(cacheVersion), 0644); err != nil {
		return nil, fmt.Errorf("write cache version: %w", err)
	}

	return &CachedRender{
		AudioPath: dst,
		CacheKey:  key,
		CachedAt:  time.Now(),
	}, nil
}

// Clear removes all cached renders
func (c *RenderCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// Size returns the total size of cached renders in bytes and the number
// of cached entries
func (c *RenderCache) Size() (int64, int, error) {
	var totalSize int64
	var count int

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		count++

		subdir := filepath.Join(c.dir, entry.Name())
		files, _ := os.ReadDir(subdir)
		for _, f := range files {
			info, err := f.Info()
			if err == nil {
				totalSize += info.Size()
			}
		}
	}

	return totalSize, count, nil
}

// Dir returns the cache directory for a key (for external access)
func (c *RenderCache) Dir(key string) string {
	return filepath.Join(c.dir, key)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func copyFile(src, dst string) error {
	input, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, input, 0644)
}
