package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Settings represents the application configuration persisted to disk.
type Settings struct {
	Server    ServerSettings    `json:"server"`
	Metadata  MetadataSettings  `json:"metadata"`
	Search    SearchSettings    `json:"search"`
	Recommend RecommendSettings `json:"recommend"`
	Storage   StorageSettings   `json:"storage"`
	Log       LogConfig         `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// MetadataSettings holds upstream provider credentials. OMDb accepts
// several keys; the client rotates to the next one when a key is
// rejected or rate limited.
type MetadataSettings struct {
	OMDbAPIKeys    []string `json:"omdbApiKeys"`
	TMDBAPIKey     string   `json:"tmdbApiKey"`
	HTTPTimeoutSec int      `json:"httpTimeoutSec"`
}

type SearchSettings struct {
	TimeoutSec int `json:"timeoutSec"`
}

// RecommendSettings tunes the recommendation pipeline. Zero values
// fall back to the engine defaults.
type RecommendSettings struct {
	LatestQuota       float64 `json:"latestQuota"`
	LatestWindowYears int     `json:"latestWindowYears"`
	EnrichLimit       int     `json:"enrichLimit"`
	EnrichConcurrency int     `json:"enrichConcurrency"`
	PoolMultiplier    int     `json:"poolMultiplier"`
	MinPoolSize       int     `json:"minPoolSize"`
	KeywordYears      int     `json:"keywordYears"`
	StrictGenreFilter bool    `json:"strictGenreFilter"`
}

// StorageSettings locates the JSON stores for users and watch history.
type StorageSettings struct {
	Directory string `json:"directory"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	File       string `json:"file"`
	Level      string `json:"level"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns sane defaults for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Server:   ServerSettings{Host: "0.0.0.0", Port: 8787},
		Metadata: MetadataSettings{OMDbAPIKeys: []string{}, TMDBAPIKey: "", HTTPTimeoutSec: 8},
		Search:   SearchSettings{TimeoutSec: 3},
		Recommend: RecommendSettings{
			LatestQuota:       0.35,
			LatestWindowYears: 2,
			EnrichLimit:       30,
			EnrichConcurrency: 4,
			PoolMultiplier:    4,
			MinPoolSize:       36,
			KeywordYears:      7,
			StrictGenreFilter: false,
		},
		Storage: StorageSettings{Directory: "data"},
		Log: LogConfig{
			File:       "data/logs/backend.log",
			Level:      "info",
			MaxSize:    50, // 50 MB per file
			MaxBackups: 3,  // keep 3 old files
			MaxAge:     7,  // 7 days
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		// create with defaults
		defaults := DefaultSettings()
		if err := m.Save(defaults); err != nil {
			return Settings{}, err
		}
		return applyEnvOverrides(defaults), nil
	}
	f, err := os.Open(m.path)
	if err != nil {
		return Settings{}, err
	}
	defer f.Close()

	s := DefaultSettings()
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return Settings{}, err
	}
	return applyEnvOverrides(s), nil
}

// applyEnvOverrides lets credentials come from the environment so the
// settings file on disk never has to hold API keys.
func applyEnvOverrides(s Settings) Settings {
	if keys := strings.TrimSpace(os.Getenv("REELSTREAM_OMDB_KEYS")); keys != "" {
		s.Metadata.OMDbAPIKeys = splitKeys(keys)
	}
	if key := strings.TrimSpace(os.Getenv("REELSTREAM_TMDB_KEY")); key != "" {
		s.Metadata.TMDBAPIKey = key
	}
	if dir := strings.TrimSpace(os.Getenv("REELSTREAM_DATA_DIR")); dir != "" {
		s.Storage.Directory = dir
	}
	return s
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(k); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

// Save writes the provided settings to disk atomically.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, m.path)
}
