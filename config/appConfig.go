package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// FeedConfig describes one supplier feed merged into a site's product shard.
type FeedConfig struct {
	SiteID      int64  `yaml:"site_id"`
	InfURL      string `yaml:"inf_url"`
	CSVURL      string `yaml:"csv_url"`
	MetadataKey string `yaml:"metadata_key"`
}

type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Postgres PostgresConfig `yaml:"postgres"`
	Feeds    []FeedConfig   `yaml:"feeds"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
