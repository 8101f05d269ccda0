package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config carries the environment-backed settings for the case-management API
// and the nature-of-suit lookup database. Values come from the process
// environment, optionally seeded from a .env file.
type Config struct {
	TokenURL    string
	BaseAPIURL  string
	APIUsername string
	APIPassword string

	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string
}

// Load reads the optional .env file and builds a Config from the environment.
// A missing .env is not an error; explicit environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TokenURL:         os.Getenv("API_TOKEN_URL"),
		BaseAPIURL:       os.Getenv("BASE_API_URL"),
		APIUsername:      os.Getenv("API_USERNAME"),
		APIPassword:      os.Getenv("API_PASSWORD"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     os.Getenv("POSTGRES_PORT"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
	}
	return cfg, nil
}

// PostgresDSN builds the connection string for the lookup-table database.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

// RequireAPI validates that the settings needed to reach the case API are set.
func (c *Config) RequireAPI() error {
	if c.BaseAPIURL == "" {
		return fmt.Errorf("BASE_API_URL is not set")
	}
	if c.TokenURL == "" {
		return fmt.Errorf("API_TOKEN_URL is not set")
	}
	return nil
}
