package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSteam(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateOperation(); err != nil {
		return err
	}
	return c.validateFiles()
}

func (c *Config) validateSteam() error {
	if c.Operation.QueueFromFile {
		// File mode needs no remote identity beyond appdetails, which is
		// unauthenticated.
		return nil
	}
	if c.Steam.SteamID == "" {
		return errors.New("steam.steam_id is required (the vanity id in your community profile URL)")
	}
	if c.Steam.APIKey == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/steamqueue/config.toml"
		}
		return fmt.Errorf("steam.api_key is required. Set STEAM_API_KEY env var or edit %s (create with 'steamqueue config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.RateLimit < 0 {
		return errors.New("api.rate_limit must be >= 0 (seconds)")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateOperation() error {
	if c.Operation.TestMode && c.Operation.TestLimit <= 0 {
		return errors.New("operation.test_limit must be positive when operation.test_mode is true")
	}
	return nil
}

func (c *Config) validateFiles() error {
	required := map[string]string{
		"files.software_file": c.Files.SoftwareFile,
		"files.games_file":    c.Files.GamesFile,
		"files.queue_file":    c.Files.QueueFile,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%s must be set", key)
		}
	}
	if c.Operation.QueueFromFile && c.Files.InputFile == "" {
		return errors.New("files.input_file must be set when operation.queue_from_file is true")
	}
	if c.Operation.EnableLogging && c.Files.LogFile == "" {
		return errors.New("files.log_file must be set when operation.enable_logging is true")
	}
	return nil
}
