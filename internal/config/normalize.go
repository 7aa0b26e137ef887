package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSteam(); err != nil {
		return err
	}
	c.normalizeAPI()
	if err := c.normalizeFiles(); err != nil {
		return err
	}
	c.normalizeDRM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeSteam() error {
	c.Steam.SteamID = strings.TrimSpace(c.Steam.SteamID)
	c.Steam.APIKey = strings.TrimSpace(c.Steam.APIKey)
	if c.Steam.APIKey == "" {
		if value, ok := os.LookupEnv("STEAM_API_KEY"); ok {
			c.Steam.APIKey = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizeAPI() {
	c.API.StoreBaseURL = trimBaseURL(c.API.StoreBaseURL, defaultStoreBaseURL)
	c.API.WebAPIBaseURL = trimBaseURL(c.API.WebAPIBaseURL, defaultWebAPIBaseURL)
	c.API.CommunityBaseURL = trimBaseURL(c.API.CommunityBaseURL, defaultCommunityBaseURL)
	if c.API.Timeout <= 0 {
		c.API.Timeout = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeFiles() error {
	var err error
	if c.Files.SoftwareFile, err = expandPath(c.Files.SoftwareFile); err != nil {
		return fmt.Errorf("files.software_file: %w", err)
	}
	if c.Files.GamesFile, err = expandPath(c.Files.GamesFile); err != nil {
		return fmt.Errorf("files.games_file: %w", err)
	}
	if c.Files.QueueFile, err = expandPath(c.Files.QueueFile); err != nil {
		return fmt.Errorf("files.queue_file: %w", err)
	}
	if c.Files.InputFile, err = expandPath(c.Files.InputFile); err != nil {
		return fmt.Errorf("files.input_file: %w", err)
	}
	if c.Files.LogFile, err = expandPath(c.Files.LogFile); err != nil {
		return fmt.Errorf("files.log_file: %w", err)
	}
	if strings.TrimSpace(c.Files.HistoryDB) == "" {
		c.Files.HistoryDB = defaultHistoryDB
	}
	if c.Files.HistoryDB, err = expandPath(c.Files.HistoryDB); err != nil {
		return fmt.Errorf("files.history_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeDRM() {
	patterns := make([]string, 0, len(c.DRM.DenuvoStrings))
	seen := make(map[string]struct{}, len(c.DRM.DenuvoStrings))
	for _, pattern := range c.DRM.DenuvoStrings {
		trimmed := strings.TrimSpace(pattern)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		patterns = append(patterns, trimmed)
	}
	if len(patterns) == 0 {
		patterns = append([]string(nil), defaultDenuvoStrings...)
	}
	c.DRM.DenuvoStrings = patterns
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Operation.VerboseLogging && c.Logging.Level == "info" {
		c.Logging.Level = "debug"
	}
}

func trimBaseURL(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	return strings.TrimRight(value, "/")
}
