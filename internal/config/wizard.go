package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to the given path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to taaza! Let's configure your store connection.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Backend address.
	basePrompt := promptui.Prompt{
		Label:   "Backend base URL",
		Default: defaults.BaseURL,
		Validate: func(s string) error {
			probe := *defaults
			probe.BaseURL = s
			return probe.Validate()
		},
	}
	baseURL, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base url: %w", err)
	}

	// 2. Country code for mobile numbers.
	ccPrompt := promptui.Prompt{
		Label:    "Mobile country code",
		Default:  defaults.CountryCode,
		Validate: validateCountryCode,
	}
	countryCode, err := ccPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("country code: %w", err)
	}

	// 3. Currency label.
	currencyPrompt := promptui.Prompt{
		Label:   "Currency label",
		Default: defaults.CurrencyLabel,
	}
	currency, err := currencyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("currency label: %w", err)
	}

	// 4. Request timeout.
	timeoutPrompt := promptui.Prompt{
		Label:   "Request timeout in seconds",
		Default: strconv.Itoa(defaults.TimeoutSeconds),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("enter a positive number")
			}
			return nil
		},
	}
	timeoutStr, err := timeoutPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("timeout: %w", err)
	}
	timeout, _ := strconv.Atoi(timeoutStr)

	// 5. Local order history.
	historyPrompt := promptui.Prompt{
		Label:   "Order history path (blank to disable)",
		Default: defaults.HistoryPath,
	}
	historyPath, err := historyPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("history path: %w", err)
	}

	cfg := &Config{
		BaseURL:        baseURL,
		CountryCode:    countryCode,
		CurrencyLabel:  currency,
		TimeoutSeconds: timeout,
		HistoryPath:    historyPath,
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
