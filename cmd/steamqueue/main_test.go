package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"steamqueue/internal/config"
)

// writeTestConfig writes a minimal valid file-mode config so commands
// can load without remote credentials.
func writeTestConfig(t *testing.T, base string) string {
	t.Helper()
	inputPath := filepath.Join(base, "input.txt")
	if err := os.WriteFile(inputPath, []byte("101\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	content := fmt.Sprintf(`[operation]
queue_from_file = true
enable_logging = false

[files]
software_file = %q
games_file = %q
queue_file = %q
input_file = %q
history_db = %q
`,
		filepath.Join(base, "software.txt"),
		filepath.Join(base, "games.txt"),
		filepath.Join(base, "queue.txt"),
		inputPath,
		filepath.Join(base, "history.db"),
	)
	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return configPath
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, target) {
		t.Fatalf("output missing target path: %q", out)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[steam]") {
		t.Fatalf("sample config missing [steam] section: %q", data)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShowMasksAPIKey(t *testing.T) {
	t.Setenv("STEAM_API_KEY", "")
	configPath := writeTestConfig(t, t.TempDir())

	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "steam.api_key") || !strings.Contains(out, "(unset)") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestHistoryListEmpty(t *testing.T) {
	configPath := writeTestConfig(t, t.TempDir())

	out, err := runCLI(t, "--config", configPath, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	if !strings.Contains(out, "No runs recorded") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestBannerReflectsConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Operation.TestMode = true
	cfg.Operation.TestLimit = 5

	banner := renderBanner(&cfg)
	if !strings.Contains(banner, "on (limit 5)") {
		t.Fatalf("banner missing test mode: %q", banner)
	}
	if !strings.Contains(banner, "Denuvo filtering") {
		t.Fatalf("banner missing denuvo row: %q", banner)
	}
}
