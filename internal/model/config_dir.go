package model

import (
	"os"
	"path/filepath"
)

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".loreweave-cache"
	}
	return filepath.Join(home, ".loreweave", "cache")
}
