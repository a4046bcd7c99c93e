package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved application configuration. It is loaded once in
// main and passed explicitly into constructors; business logic never
// reads the environment directly.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	Content  ContentConfig  `yaml:"content"`
}

type AppConfig struct {
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	ExpiresIn time.Duration `yaml:"expires_in"`
	RefreshIn time.Duration `yaml:"refresh_in"`
}

type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// ContentConfig configures the versioned content store. Version and
// Locale are the defaults used when a caller does not pin either;
// PrivilegedRoles may see preview revisions.
type ContentConfig struct {
	Version         string   `yaml:"version"`
	Locale          string   `yaml:"locale"`
	PrivilegedRoles []string `yaml:"privileged_roles"`
}

// Defaults returns the pure fallback configuration used when a config
// file or individual keys are absent.
func Defaults() Config {
	return Config{
		App: AppConfig{Env: "local", Port: 8080},
		Database: DatabaseConfig{
			Host:         "127.0.0.1",
			Port:         3306,
			User:         "beacon",
			Name:         "beacon",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
		},
		Redis: RedisConfig{Host: "127.0.0.1", Port: 6379, PoolSize: 10},
		JWT: JWTConfig{
			ExpiresIn: 15 * time.Minute,
			RefreshIn: 7 * 24 * time.Hour,
		},
		CORS: CORSConfig{AllowOrigins: "http://localhost:3000"},
		Content: ContentConfig{
			Version:         "v1",
			Locale:          "en",
			PrivilegedRoles: []string{"admin", "editor"},
		},
	}
}

// Load reads the yaml config file at path over the defaults, then
// applies environment variable overrides. A missing file is not an
// error; env vars alone can configure the process.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if cfg.JWT.Secret == "" && cfg.App.Env != "local" {
		return nil, fmt.Errorf("JWT_SECRET is required outside local env")
	}

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.App.Env, "APP_ENV")
	setInt(&cfg.App.Port, "APP_PORT")
	setStr(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setStr(&cfg.Database.User, "DB_USER")
	setStr(&cfg.Database.Password, "DB_PASSWORD")
	setStr(&cfg.Database.Name, "DB_NAME")
	setStr(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	setStr(&cfg.JWT.Secret, "JWT_SECRET")
	setStr(&cfg.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
	setStr(&cfg.Content.Version, "CONTENT_VERSION")
	setStr(&cfg.Content.Locale, "CONTENT_LOCALE")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// IsDevelopment reports whether the process runs in a dev-like env
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev" || c.App.Env == "development"
}

// DSN builds the MySQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		c.User, c.Password, c.Host, c.Port, c.Name)
}
