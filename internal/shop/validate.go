package shop

import "fmt"

// ValidateMobile checks a mobile number as entered without the country
// code: digits only, leading 3, exactly 10 digits (e.g. 3001234567).
// The checks run in that order so the user sees the most specific problem.
func ValidateMobile(mobile string) error {
	if mobile == "" {
		return fmt.Errorf("mobile number is required")
	}
	for _, r := range mobile {
		if r < '0' || r > '9' {
			return fmt.Errorf("mobile number must contain digits only")
		}
	}
	if mobile[0] != '3' {
		return fmt.Errorf("mobile number must start with 3")
	}
	if len(mobile) != 10 {
		return fmt.Errorf("mobile number must be exactly 10 digits")
	}
	return nil
}
