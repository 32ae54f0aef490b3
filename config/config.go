package config

import (
	"os"
)

// ServerConfig holds the catalog API listen settings.
type ServerConfig struct {
	Address     string `yaml:"address"`
	Environment string `yaml:"environment"`
}

func GetPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		User:     getEnv("POSTGRES_USER", "postgres"),
		Password: getEnv("POSTGRES_PASSWORD", "postgres"),
		DBName:   getEnv("POSTGRES_NAME", "postgres"),
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Address:     getEnv("CATALOG_ADDR", ":8082"),
		Environment: getEnv("CATALOG_ENV", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
