package shop

import (
	"strings"
	"testing"
)

func TestValidateMobile(t *testing.T) {
	tests := []struct {
		mobile  string
		wantErr string // empty means valid
	}{
		{"3123456789", ""},
		{"3001234567", ""},
		{"12345", "start with 3"},
		{"31234567", "exactly 10 digits"},
		{"31234567890", "exactly 10 digits"},
		{"3a23456789", "digits only"},
		{"312345678 ", "digits only"},
		{"+3123456789", "digits only"},
		{"", "required"},
	}

	for _, tt := range tests {
		err := ValidateMobile(tt.mobile)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("ValidateMobile(%q) = %v, want nil", tt.mobile, err)
			}
			continue
		}
		if err == nil {
			t.Errorf("ValidateMobile(%q) = nil, want error containing %q", tt.mobile, tt.wantErr)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("ValidateMobile(%q) = %q, want error containing %q", tt.mobile, err, tt.wantErr)
		}
	}
}
