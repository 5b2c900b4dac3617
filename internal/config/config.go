package config

import (
	"fmt"
	"os"
	"strconv"
)

// Settings holds process configuration loaded from the environment.
// Catalog credentials are required; generation-backend credentials are not,
// so a partially configured process can still serve read endpoints.
type Settings struct {
	StoreHash    string
	AccessToken  string
	ClientID     string
	ClientSecret string
	ChannelID    int
	Environment  string

	GenAIAPIKey  string
	GenAIModelID string

	Port      string
	DebugMode bool
}

// Load reads settings from the environment and validates required keys
func Load() (*Settings, error) {
	s := &Settings{
		StoreHash:    os.Getenv("BC_STORE_HASH"),
		AccessToken:  os.Getenv("BC_ACCESS_TOKEN"),
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),
		ChannelID:    1,
		Environment:  "production",
		GenAIAPIKey:  os.Getenv("GENAI_API_KEY"),
		GenAIModelID: os.Getenv("GENAI_MODEL_ID"),
		Port:         "8080",
	}

	if s.StoreHash == "" || s.AccessToken == "" {
		return nil, fmt.Errorf("BC_STORE_HASH and BC_ACCESS_TOKEN are required")
	}

	if v := os.Getenv("BC_CHANNEL_ID"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BC_CHANNEL_ID %q: %w", v, err)
		}
		s.ChannelID = id
	}
	if v := os.Getenv("BC_ENV"); v != "" {
		s.Environment = v
	}
	if v := os.Getenv("PORT"); v != "" {
		s.Port = v
	}
	if v := os.Getenv("DEBUG_MODE"); v != "" {
		s.DebugMode, _ = strconv.ParseBool(v)
	}

	return s, nil
}
