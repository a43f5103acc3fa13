// Package config resolves where the scripture document and its search index live.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// DefaultDataPath is where the document lives relative to the working directory.
	DefaultDataPath = "./bos-app/src/data/kjv-bible.json"

	// EnvDataPath overrides the document path.
	EnvDataPath = "KJV_DATA"
	// EnvIndexPath overrides the search index path.
	EnvIndexPath = "KJV_INDEX"

	// CacheDir is the directory name under XDG_CACHE_HOME.
	CacheDir = "kjv"
	// IndexFile is the default search index file name.
	IndexFile = "index.db"
)

// Source names where a resolved path came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ResolveDataPath picks the document path: flag, then KJV_DATA, then
// data_path from the global config, then DefaultDataPath.
func ResolveDataPath(flagValue string) (string, Source, error) {
	if flagValue != "" {
		return ExpandPath(flagValue), SourceFlag, nil
	}
	if v := os.Getenv(EnvDataPath); v != "" {
		return ExpandPath(v), SourceEnv, nil
	}
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", "", err
	}
	if cfg.DataPath != "" {
		return cfg.DataPath, SourceConfig, nil
	}
	return DefaultDataPath, SourceDefault, nil
}

// ResolveIndexPath picks the search index path: KJV_INDEX, then index_path
// from the global config, then index.db in the user cache directory.
func ResolveIndexPath() (string, error) {
	if v := os.Getenv(EnvIndexPath); v != "" {
		return ExpandPath(v), nil
	}
	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.IndexPath != "" {
		return cfg.IndexPath, nil
	}
	return filepath.Join(CachePath(), IndexFile), nil
}

// CachePath returns the cache directory, respecting XDG_CACHE_HOME.
func CachePath() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, CacheDir)
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, CacheDir)
	}
	return filepath.Join(os.TempDir(), CacheDir)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
