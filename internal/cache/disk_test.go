package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := Key("prompt: zworblax lore")
	if err := c.Set(key, []byte("generated text"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get(key)
	if !found {
		t.Fatal("Expected cache hit")
	}
	if string(got) != "generated text" {
		t.Errorf("Expected cached value, got %q", got)
	}
}

func TestDiskCache_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	if err := c.Set(Key("prompt"), []byte("text"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 cache file, got %d", len(entries))
	}
	if strings.HasSuffix(entries[0].Name(), ".tmp") {
		t.Errorf("Expected committed cache file, got %s", entries[0].Name())
	}
	if filepath.Ext(entries[0].Name()) != ".json" {
		t.Errorf("Expected .json cache file, got %s", entries[0].Name())
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := Key("short-lived")
	if err := c.Set(key, []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := c.Get(key); found {
		t.Error("Expected expired entry to miss")
	}
}

func TestLayeredCache_PromotesFromDisk(t *testing.T) {
	dir := t.TempDir()

	// Seed the disk layer directly
	disk := NewDiskCache(dir, time.Hour)
	key := Key("prompt")
	if err := disk.Set(key, []byte("from disk"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	layered := NewLayeredCache(time.Hour, dir, time.Hour)
	got, found := layered.Get(key)
	if !found || string(got) != "from disk" {
		t.Fatalf("Expected disk hit through layered cache, got %q (found=%v)", got, found)
	}
}

func TestKey_Distinct(t *testing.T) {
	if Key("a") == Key("b") {
		t.Error("Expected distinct keys for distinct prompts")
	}
}
