package main

import (
	"fmt"
	"os"

	"github.com/quizdeck/triviacast/go/internal/models"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration for the server. Every field has a working
// default so the server starts with no config file at all.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`
	Game struct {
		// Scoring maps round names to points, overriding the defaults.
		Scoring map[string]int `yaml:"scoring"`
	} `yaml:"game"`
	Outbox struct {
		FallbackIntervalSeconds int `yaml:"fallback_interval_seconds"`
	} `yaml:"outbox"`
}

func loadConfig(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &config, nil
}

// pointsTable builds the scoring table from config, falling back to the
// defaults for rounds the config leaves out.
func (c *Config) pointsTable() (models.PointsTable, error) {
	table := models.DefaultPointsTable()
	for name, points := range c.Game.Scoring {
		round, err := models.ParseRound(name)
		if err != nil {
			return nil, fmt.Errorf("invalid scoring entry: %w", err)
		}
		if points <= 0 {
			return nil, fmt.Errorf("invalid scoring entry: %s must award positive points", name)
		}
		table[round] = points
	}
	return table, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
