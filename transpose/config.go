package main

import (
	"encoding/json"
	"os"
)

// Config holds the CLI's own defaults, loaded from a JSON file via -config.
type Config struct {
	Store string `json:"store"`
	Log   string `json:"log"`
	Quiet bool   `json:"quiet"`
}

func parseJSONConfig(config *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(config)
}
