package main

import (
	"fmt"

	"steamqueue/internal/config"
)

// renderBanner summarizes the effective run settings before processing
// starts, so an operator can catch a misconfigured run at the prompt.
func renderBanner(cfg *config.Config) string {
	mode := "library"
	if cfg.Operation.QueueFromFile {
		mode = "file"
	}
	testMode := "off"
	if cfg.Operation.TestMode {
		testMode = fmt.Sprintf("on (limit %d)", cfg.Operation.TestLimit)
	}

	pairs := [][2]string{
		{"Mode", mode},
		{"Windows", yesNo(cfg.Platforms.Windows)},
		{"Mac", yesNo(cfg.Platforms.Mac)},
		{"Linux", yesNo(cfg.Platforms.Linux)},
		{"Denuvo filtering", yesNo(cfg.Operation.FilterDenuvo)},
		{"Test mode", testMode},
		{"Rate limit", cfg.RateLimitInterval().String()},
		{"Games log", cfg.Files.GamesFile},
		{"Queue file", cfg.Files.QueueFile},
	}
	return renderPairs("Setting", "Value", pairs)
}
