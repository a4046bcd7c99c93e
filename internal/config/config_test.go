package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// chdir is t.Chdir from Go 1.24, reimplemented for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.NoError(t, err)
	assert.Equal(t, "local", cfg.App.Env)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "v1", cfg.Content.Version)
	assert.Equal(t, "en", cfg.Content.Locale)
	assert.Contains(t, cfg.Content.PrivilegedRoles, "editor")
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
app:
  port: 9090
content:
  version: v2
  privileged_roles: [admin]
`)
	assert.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "v2", cfg.Content.Version)
	assert.Equal(t, []string{"admin"}, cfg.Content.PrivilegedRoles)
	// Untouched sections keep defaults
	assert.Equal(t, "127.0.0.1", cfg.Database.Host)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("database:\n  host: from-file\n"), 0o644))

	t.Setenv("DB_HOST", "from-env")
	t.Setenv("CONTENT_VERSION", "v3")

	cfg, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Host)
	assert.Equal(t, "v3", cfg.Content.Version)
}

func TestLoad_RequiresSecretOutsideLocal(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestLoadDotEnv_EnvSpecificFileWins(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env.staging"), []byte("BEACON_DOTENV_A=staging\n"), 0o644))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BEACON_DOTENV_A=base\nBEACON_DOTENV_B=base\n"), 0o644))
	chdir(t, dir)
	t.Setenv("APP_ENV", "staging")
	t.Cleanup(func() {
		os.Unsetenv("BEACON_DOTENV_A")
		os.Unsetenv("BEACON_DOTENV_B")
	})

	files := LoadDotEnv()

	assert.Equal(t, []string{".env.staging", ".env"}, files)
	// .env.staging loads first and wins; .env still fills the gaps
	assert.Equal(t, "staging", os.Getenv("BEACON_DOTENV_A"))
	assert.Equal(t, "base", os.Getenv("BEACON_DOTENV_B"))
}

func TestLoadDotEnv_NoFiles(t *testing.T) {
	chdir(t, t.TempDir())

	assert.Empty(t, LoadDotEnv())
}

func TestIsDevelopment(t *testing.T) {
	for env, want := range map[string]bool{
		"local":       true,
		"dev":         true,
		"development": true,
		"production":  false,
		"staging":     false,
	} {
		cfg := Config{App: AppConfig{Env: env}}
		assert.Equal(t, want, cfg.IsDevelopment(), env)
	}
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 3306, User: "u", Password: "p", Name: "beacon"}
	assert.Equal(t, "u:p@tcp(db:3306)/beacon?charset=utf8mb4&parseTime=True&loc=UTC", db.DSN())
}
