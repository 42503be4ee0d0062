package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKeyChangesWithInputs(t *testing.T) {
	base := Key([]byte("midi-bytes"), "/sf/default.sf2", "wav", 0.8, 44100)

	if got := Key([]byte("midi-bytes"), "/sf/default.sf2", "wav", 0.8, 44100); got != base {
		t.Errorf("same inputs produced different keys: %s != %s", got, base)
	}

	variants := []string{
		Key([]byte("other-bytes"), "/sf/default.sf2", "wav", 0.8, 44100),
		Key([]byte("midi-bytes"), "/sf/other.sf2", "wav", 0.8, 44100),
		Key([]byte("midi-bytes"), "/sf/default.sf2", "mp3", 0.8, 44100),
		Key([]byte("midi-bytes"), "/sf/default.sf2", "wav", 0.9, 44100),
		Key([]byte("midi-bytes"), "/sf/default.sf2", "wav", 0.8, 48000),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d did not change the key", i)
		}
	}

	if len(base) != 16 {
		t.Errorf("key length = %d, want 16", len(base))
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c := &RenderCache{dir: t.TempDir()}

	audio := filepath.Join(t.TempDir(), "track.wav")
	if err := os.WriteFile(audio, []byte("RIFFfake"), 0644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	key := Key([]byte("notes"), "/sf/gm.sf2", "wav", 0.8, 44100)
	if _, ok := c.Get(key, "wav"); ok {
		t.Fatal("unexpected cache hit before put")
	}

	put, err := c.Put(key, "wav", audio)
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok := c.Get(key, "wav")
	if !ok {
		t.Fatal("cache miss after put")
	}
	if got.AudioPath != put.AudioPath {
		t.Errorf("audio path = %s, want %s", got.AudioPath, put.AudioPath)
	}
	data, err := os.ReadFile(got.AudioPath)
	if err != nil {
		t.Fatalf("read cached audio: %v", err)
	}
	if string(data) != "RIFFfake" {
		t.Errorf("cached audio content = %q", data)
	}

	// A different format for the same key is a miss
	if _, ok := c.Get(key, "mp3"); ok {
		t.Error("unexpected hit for unrendered format")
	}
}

func TestStaleVersionInvalidates(t *testing.T) {
	c := &RenderCache{dir: t.TempDir()}

	audio := filepath.Join(t.TempDir(), "track.wav")
	if err := os.WriteFile(audio, []byte("RIFF"), 0644); err != nil {
		t.Fatalf("write audio: %v", err)
	}

	key := "abcdef0123456789"
	if _, err := c.Put(key, "wav", audio); err != nil {
		t.Fatalf("put: %v", err)
	}

	versionPath := filepath.Join(c.Dir(key), ".version")
	if err := os.WriteFile(versionPath, []byte("render-v0"), 0644); err != nil {
		t.Fatalf("stamp old version: %v", err)
	}

	if _, ok := c.Get(key, "wav"); ok {
		t.Fatal("stale render served from cache")
	}
}

func TestClearAndSize(t *testing.T) {
	c := &RenderCache{dir: filepath.Join(t.TempDir(), "render")}

	size, count, err := c.Size()
	if err != nil || size != 0 || count != 0 {
		t.Fatalf("empty cache size = %d/%d/%v", size, count, err)
	}

	audio := filepath.Join(t.TempDir(), "track.wav")
	if err := os.WriteFile(audio, []byte("0123456789"), 0644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	if _, err := c.Put("key1", "wav", audio); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := c.Put("key2", "wav", audio); err != nil {
		t.Fatalf("put: %v", err)
	}

	size, count, err = c.Size()
	if err != nil {
		t.Fatalf("size: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if size < 20 {
		t.Errorf("size = %d, want at least 20", size)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := c.Get("key1", "wav"); ok {
		t.Error("hit after clear")
	}
}
