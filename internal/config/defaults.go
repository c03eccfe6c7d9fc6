package config

import (
	"os"
	"path/filepath"
)

// DefaultBaseURL matches the backend's local development address.
const DefaultBaseURL = "http://localhost:8000"

// DefaultHistoryPath places the order history under the user's home
// directory, falling back to the working directory when home is unknown.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taaza", "history.db")
	}
	return filepath.Join(home, ".taaza", "history.db")
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		CountryCode:    "+92",
		CurrencyLabel:  "Rs",
		TimeoutSeconds: 15,
		HistoryPath:    DefaultHistoryPath(),
	}
}
