package config

import "time"

// Config is the top-level taaza configuration, corresponding to .taaza.yml.
type Config struct {
	// BaseURL is the root of the Taaza ordering backend.
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	// CountryCode prefixes the mobile number sent at registration.
	CountryCode string `yaml:"country_code" koanf:"country_code"`
	// CurrencyLabel is the display suffix for prices and totals.
	CurrencyLabel string `yaml:"currency_label" koanf:"currency_label"`
	// TimeoutSeconds bounds every backend request.
	TimeoutSeconds int `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	// HistoryPath locates the local order-history database. Empty
	// disables local history.
	HistoryPath string `yaml:"history_path" koanf:"history_path"`
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
