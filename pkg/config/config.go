// Package config loads the application configuration from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	ListenAddr              string `json:"listen_addr"`
	DataDir                 string `json:"data_dir"`
	StoreBackend            string `json:"store_backend"`
	ContentDir              string `json:"content_dir"`
	AdminPassword           string `json:"admin_password"`
	JWTSecret               string `json:"jwt_secret"`
	TokenTTLMinutes         int    `json:"token_ttl_minutes,omitempty"`
	ExportPrimeDelaySeconds int    `json:"export_prime_delay_seconds,omitempty"`
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".folio", "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'folio init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variables if set
	if addr := os.Getenv("FOLIO_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if dir := os.Getenv("FOLIO_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if backend := os.Getenv("FOLIO_STORE_BACKEND"); backend != "" {
		cfg.StoreBackend = backend
	}
	if dir := os.Getenv("FOLIO_CONTENT_DIR"); dir != "" {
		cfg.ContentDir = dir
	}
	if password := os.Getenv("FOLIO_ADMIN_PASSWORD"); password != "" {
		cfg.AdminPassword = password
	}
	if secret := os.Getenv("FOLIO_JWT_SECRET"); secret != "" {
		cfg.JWTSecret = secret
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks required configuration and fills defaults.
func (c *Config) Validate() (err error) {
	if c.AdminPassword == "" {
		err = errors.New("admin_password is required (set in config or FOLIO_ADMIN_PASSWORD env var)")
		return err
	}

	if c.JWTSecret == "" {
		err = errors.New("jwt_secret is required (set in config or FOLIO_JWT_SECRET env var)")
		return err
	}

	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}

	if c.DataDir == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		c.DataDir = filepath.Join(homeDir, ".folio", "data")
	}

	if c.StoreBackend == "" {
		c.StoreBackend = "sqlite"
	}

	if c.ContentDir == "" {
		c.ContentDir = "./site"
	}

	if c.TokenTTLMinutes <= 0 {
		c.TokenTTLMinutes = 24 * 60
	}

	if c.ExportPrimeDelaySeconds <= 0 {
		c.ExportPrimeDelaySeconds = 10
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".folio", "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		ListenAddr:              ":8080",
		DataDir:                 filepath.Join(dir, "data"),
		StoreBackend:            "sqlite",
		ContentDir:              "./site",
		AdminPassword:           "change-me",
		JWTSecret:               "",
		TokenTTLMinutes:         24 * 60,
		ExportPrimeDelaySeconds: 10,
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
