package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        int          `mapstructure:"port"`
	DatabaseURL string       `mapstructure:"database_url"`
	Auth0       Auth0Config  `mapstructure:"auth0"`
	RoleID      RoleIDConfig `mapstructure:"role_id"`
	Upload      UploadConfig `mapstructure:"upload"`
	Batch       BatchConfig  `mapstructure:"batch"`
	Log         LogConfig    `mapstructure:"log"`
}

// Auth0Config carries the tenant and the two client-credentials grants: the
// API client handed out through the token endpoint, and the Management API
// client the directory adapter uses.
type Auth0Config struct {
	Domain       string           `mapstructure:"domain"`
	ClientID     string           `mapstructure:"client_id"`
	ClientSecret string           `mapstructure:"client_secret"`
	Audience     string           `mapstructure:"audience"`
	Management   ManagementConfig `mapstructure:"management_api"`
}

type ManagementConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	Audience     string `mapstructure:"audience"`
}

// RoleIDConfig maps application roles to Auth0 role identifiers. An empty
// value disables assignment for that role (logged, not fatal).
type RoleIDConfig struct {
	Staff   string `mapstructure:"staff"`
	Teacher string `mapstructure:"teacher"`
	Student string `mapstructure:"student"`
}

type UploadConfig struct {
	Dir         string `mapstructure:"dir"`
	MaxFileSize string `mapstructure:"max_file_size"`
}

// BatchConfig parameterizes the fixed-delay rate limiting of bulk runs.
type BatchConfig struct {
	PaceEvery   int `mapstructure:"pace_every"`
	PauseMillis int `mapstructure:"pause_millis"`
}

func (c BatchConfig) Pause() time.Duration {
	return time.Duration(c.PauseMillis) * time.Millisecond
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables, with viper defaults
// underneath. Keys map to env names with dots replaced by underscores, e.g.
// auth0.management_api.client_id -> AUTH0_MANAGEMENT_API_CLIENT_ID.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("database_url", "")
	v.SetDefault("auth0.domain", "")
	v.SetDefault("auth0.client_id", "")
	v.SetDefault("auth0.client_secret", "")
	v.SetDefault("auth0.audience", "")
	v.SetDefault("auth0.management_api.client_id", "")
	v.SetDefault("auth0.management_api.client_secret", "")
	v.SetDefault("auth0.management_api.audience", "")
	v.SetDefault("role_id.staff", "")
	v.SetDefault("role_id.teacher", "")
	v.SetDefault("role_id.student", "")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_file_size", "5M")
	v.SetDefault("batch.pace_every", 10)
	v.SetDefault("batch.pause_millis", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	required := map[string]string{
		"AUTH0_DOMAIN":                       c.Auth0.Domain,
		"AUTH0_CLIENT_ID":                    c.Auth0.ClientID,
		"AUTH0_CLIENT_SECRET":                c.Auth0.ClientSecret,
		"AUTH0_AUDIENCE":                     c.Auth0.Audience,
		"AUTH0_MANAGEMENT_API_CLIENT_ID":     c.Auth0.Management.ClientID,
		"AUTH0_MANAGEMENT_API_CLIENT_SECRET": c.Auth0.Management.ClientSecret,
		"AUTH0_MANAGEMENT_API_AUDIENCE":      c.Auth0.Management.Audience,
		"DATABASE_URL":                       c.DatabaseURL,
	}

	var missing []string
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
