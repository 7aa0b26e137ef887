package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Steam contains the account identity and API credentials.
type Steam struct {
	SteamID string `toml:"steam_id"`
	APIKey  string `toml:"api_key"`
}

// API contains request pacing and endpoint configuration.
type API struct {
	RateLimit        float64 `toml:"rate_limit"` // seconds between call starts
	Timeout          int     `toml:"timeout"`    // appdetails request timeout, seconds
	StoreBaseURL     string  `toml:"store_base_url"`
	WebAPIBaseURL    string  `toml:"webapi_base_url"`
	CommunityBaseURL string  `toml:"community_base_url"`
}

// Platforms contains per-platform enable flags.
type Platforms struct {
	Windows bool `toml:"windows"`
	Mac     bool `toml:"mac"`
	Linux   bool `toml:"linux"`
}

// Operation contains run-mode toggles.
type Operation struct {
	FilterDenuvo   bool `toml:"filter_denuvo"`
	QueueFromFile  bool `toml:"queue_from_file"`
	TestMode       bool `toml:"test_mode"`
	TestLimit      int  `toml:"test_limit"`
	VerboseLogging bool `toml:"verbose_logging"`
	EnableLogging  bool `toml:"enable_logging"`
}

// Files contains the on-disk artifact paths.
type Files struct {
	SoftwareFile string `toml:"software_file"`
	GamesFile    string `toml:"games_file"`
	QueueFile    string `toml:"queue_file"`
	InputFile    string `toml:"input_file"`
	LogFile      string `toml:"log_file"`
	HistoryDB    string `toml:"history_db"`
}

// DRM contains the configurable DRM signature patterns.
type DRM struct {
	DenuvoStrings []string `toml:"denuvo_strings"`
}

// Logging contains log output configuration.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for steamqueue.
//
// Sections by subsystem:
//   - Steam: account identity and Web API key
//   - API: rate limit interval, timeout, endpoint base URLs
//   - Platforms: which platforms are eligible for the queue
//   - Operation: DRM filtering, file mode, test mode, logging toggles
//   - Files: catalog, games log, queue, input, log, and history paths
//   - DRM: case-insensitive Denuvo signature patterns
//   - Logging: console/json format and level
type Config struct {
	Steam     Steam     `toml:"steam"`
	API       API       `toml:"api"`
	Platforms Platforms `toml:"platforms"`
	Operation Operation `toml:"operation"`
	Files     Files     `toml:"files"`
	DRM       DRM       `toml:"drm"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/steamqueue/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The boolean reports
// whether a file was found at the resolved path.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("steamqueue.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// RateLimitInterval returns the configured pacing interval as a duration.
func (c *Config) RateLimitInterval() time.Duration {
	return time.Duration(c.API.RateLimit * float64(time.Second))
}

// RequestTimeout returns the appdetails request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

// EnsureDirectories creates the parent directories of every output artifact.
func (c *Config) EnsureDirectories() error {
	for _, path := range []string{c.Files.SoftwareFile, c.Files.GamesFile, c.Files.QueueFile, c.Files.LogFile, c.Files.HistoryDB} {
		dir := filepath.Dir(path)
		if dir == "." || dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
