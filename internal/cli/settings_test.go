package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "config.toml")
		content := "verbose = true\ndefaults_dir = \"/opt/rho/defaults\"\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		s := loadSettingsFile(path)
		if !s.Verbose {
			t.Error("Verbose = false, want true")
		}
		if s.DefaultsDir != "/opt/rho/defaults" {
			t.Errorf("DefaultsDir = %q, want %q", s.DefaultsDir, "/opt/rho/defaults")
		}
	})

	t.Run("missing file yields zero settings", func(t *testing.T) {
		s := loadSettingsFile(filepath.Join(dir, "nope.toml"))
		if s != (settings{}) {
			t.Errorf("settings = %+v, want zero", s)
		}
	})

	t.Run("malformed file yields zero settings", func(t *testing.T) {
		path := filepath.Join(dir, "broken.toml")
		if err := os.WriteFile(path, []byte("verbose = {{{"), 0o644); err != nil {
			t.Fatal(err)
		}

		s := loadSettingsFile(path)
		if s != (settings{}) {
			t.Errorf("settings = %+v, want zero", s)
		}
	})
}

func TestSettingsPath(t *testing.T) {
	t.Run("XDG_CONFIG_HOME wins", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/xdg")
		path, err := settingsPath()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join("/xdg", "rho", "config.toml"); path != want {
			t.Errorf("settingsPath() = %q, want %q", path, want)
		}
	})

	t.Run("falls back to home config", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory in test environment")
		}
		path, err := settingsPath()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".config", "rho", "config.toml"); path != want {
			t.Errorf("settingsPath() = %q, want %q", path, want)
		}
	})
}
