package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/playback/internal/shared"
)

// writeTestConfig writes a config file whose database lives in the test's
// temp dir, and returns both paths.
func writeTestConfig(t *testing.T) (configPath, dbPath string) {
	t.Helper()

	dir := t.TempDir()
	configPath = filepath.Join(dir, "config.toml")
	dbPath = filepath.Join(dir, "playback.db")

	content := fmt.Sprintf(`
[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_client_secret"
redirect_uri = "http://localhost:3000/admin/callback"

[database]
path = %q

[server]
host = "127.0.0.1"
port = 3000
`, dbPath)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath, dbPath
}

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	runner := NewRunner(RunnerOpts{
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: &buf,
	})
	return runner, &buf
}

func TestNewRunner(t *testing.T) {
	t.Run("applies defaults for unset options", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if runner.config == nil {
			t.Error("expected a default config")
		}
		if runner.logger == nil {
			t.Error("expected a default logger")
		}
		if runner.output != os.Stdout {
			t.Error("expected stdout as the default output")
		}
	})

	t.Run("keeps provided options", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Server.Port = 9999

		runner := NewRunner(RunnerOpts{Config: config})
		if runner.config.Server.Port != 9999 {
			t.Errorf("expected the provided config, got port %d", runner.config.Server.Port)
		}
	})
}

func TestRegister(t *testing.T) {
	runner, _ := newTestRunner(t)
	commands := runner.register()

	want := []string{"setup", "serve", "auth", "status"}
	if len(commands) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(commands))
	}
	for i, name := range want {
		if commands[i].Name != name {
			t.Errorf("expected command %q at position %d, got %q", name, i, commands[i].Name)
		}
	}
}

func TestWritePlain(t *testing.T) {
	runner, buf := newTestRunner(t)

	if err := runner.writePlain("count: %d\n", 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if buf.String() != "count: 3\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSetupCommand(t *testing.T) {
	configPath, dbPath := writeTestConfig(t)
	runner, buf := newTestRunner(t)

	cmd := setupCommand(runner)
	if err := cmd.Run(context.Background(), []string{"setup", "--config", configPath}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("expected database file created: %v", err)
	}
	if !strings.Contains(buf.String(), "Setup complete") {
		t.Errorf("expected completion message, got %q", buf.String())
	}

	db, err := shared.NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var name string
	if err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='spotify_credentials'").Scan(&name); err != nil {
		t.Errorf("expected migrations applied: %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	runner, buf := newTestRunner(t)

	setup := setupCommand(runner)
	if err := setup.Run(context.Background(), []string{"setup", "--config", configPath}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	buf.Reset()

	status := statusCommand(runner)
	if err := status.Run(context.Background(), []string{"status", "--config", configPath}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.Contains(buf.String(), "Not authenticated") {
		t.Errorf("expected not-authenticated status, got %q", buf.String())
	}
}

func TestAuthCommand(t *testing.T) {
	configPath, _ := writeTestConfig(t)
	runner, buf := newTestRunner(t)

	setup := setupCommand(runner)
	if err := setup.Run(context.Background(), []string{"setup", "--config", configPath}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	buf.Reset()

	auth := authCommand(runner)
	if err := auth.Run(context.Background(), []string{"auth", "--config", configPath}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "accounts.spotify.com/authorize") {
		t.Errorf("expected the authorization URL, got %q", out)
	}
	if !strings.Contains(out, "client_id=test_client_id") {
		t.Errorf("expected the configured client id in the URL, got %q", out)
	}
}
