package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/tidewater-labs/lakeview-cli/internal/core/domain"
	"github.com/tidewater-labs/lakeview-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Environment variables overriding file settings.
const (
	EnvEndpoint   = "LAKEVIEW_ENDPOINT"
	EnvDataset    = "LAKEVIEW_DATASET"
	EnvToken      = "LAKEVIEW_TOKEN"
	EnvAPIVersion = "LAKEVIEW_API_VERSION"
)

// fileSettings is the TOML shape of the config file.
type fileSettings struct {
	Connection struct {
		Endpoint   string `toml:"endpoint,omitempty"`
		Dataset    string `toml:"dataset,omitempty"`
		Token      string `toml:"token,omitempty"`
		APIVersion string `toml:"api_version,omitempty"`
	} `toml:"connection"`
	Defaults struct {
		ChunkSize  int      `toml:"chunk_size,omitempty"`
		MaxResults int      `toml:"max_results,omitempty"`
		Kinds      []string `toml:"kinds,omitempty"`
	} `toml:"defaults"`
}

// ConfigStore is a file-based implementation of driven.ConfigStore
// using TOML.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	stored   fileSettings
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.lakeview/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".lakeview")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	// Best-effort: a missing .env is the normal case.
	_ = godotenv.Load()

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns the effective settings: file values, environment
// overrides on top, defaults filled in.
func (s *ConfigStore) Settings() domain.Settings {
	s.mu.RLock()
	stored := s.stored
	s.mu.RUnlock()

	settings := domain.Settings{
		Connection: domain.ConnectionSettings{
			Endpoint:   stored.Connection.Endpoint,
			Dataset:    stored.Connection.Dataset,
			Token:      stored.Connection.Token,
			APIVersion: stored.Connection.APIVersion,
		},
		Defaults: domain.DefaultSettings{
			ChunkSize:  stored.Defaults.ChunkSize,
			MaxResults: stored.Defaults.MaxResults,
			Kinds:      stored.Defaults.Kinds,
		},
	}

	if v := os.Getenv(EnvEndpoint); v != "" {
		settings.Connection.Endpoint = v
	}
	if v := os.Getenv(EnvDataset); v != "" {
		settings.Connection.Dataset = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		settings.Connection.Token = v
	}
	if v := os.Getenv(EnvAPIVersion); v != "" {
		settings.Connection.APIVersion = v
	}

	return settings.Normalise()
}

// Set updates one dot-notation key and persists immediately.
func (s *ConfigStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case "connection.endpoint":
		s.stored.Connection.Endpoint = value
	case "connection.dataset":
		s.stored.Connection.Dataset = value
	case "connection.token":
		s.stored.Connection.Token = value
	case "connection.api_version":
		s.stored.Connection.APIVersion = value
	case "defaults.chunk_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		s.stored.Defaults.ChunkSize = n
	case "defaults.max_results":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		s.stored.Defaults.MaxResults = n
	case "defaults.kinds":
		s.stored.Defaults.Kinds = splitKinds(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.save()
}

// Get returns the stored value of one dot-notation key, rendered as a
// string. Environment overrides are not reflected here; Get reports
// what the file holds.
func (s *ConfigStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch key {
	case "connection.endpoint":
		return s.stored.Connection.Endpoint, true
	case "connection.dataset":
		return s.stored.Connection.Dataset, true
	case "connection.token":
		return s.stored.Connection.Token, true
	case "connection.api_version":
		return s.stored.Connection.APIVersion, true
	case "defaults.chunk_size":
		return renderInt(s.stored.Defaults.ChunkSize), true
	case "defaults.max_results":
		return renderInt(s.stored.Defaults.MaxResults), true
	case "defaults.kinds":
		return strings.Join(s.stored.Defaults.Kinds, ","), true
	}
	return "", false
}

// Keys lists the supported dot-notation keys, sorted.
func (s *ConfigStore) Keys() []string {
	return []string{
		"connection.api_version",
		"connection.dataset",
		"connection.endpoint",
		"connection.token",
		"defaults.chunk_size",
		"defaults.kinds",
		"defaults.max_results",
	}
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

func (s *ConfigStore) configDir() string {
	return filepath.Dir(s.filePath)
}

// Load reads configuration from the TOML file. A missing file starts
// the store empty.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.stored = fileSettings{}
			return nil
		}
		return err
	}

	var loaded fileSettings
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}
	s.stored = loaded
	return nil
}

// save writes configuration to the TOML file (caller must hold lock).
// Restricted permissions since the file may hold a token.
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.stored)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

func splitKinds(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	kinds := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kinds = append(kinds, p)
		}
	}
	return kinds
}

func renderInt(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
