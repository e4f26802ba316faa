package errors

import (
	"testing"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "2024-01-01", false},
		{"leap day", "2024-02-29", false},

		{"empty", "", true},
		{"not a leap year", "2023-02-29", true},
		{"slashes", "2024/01/01", true},
		{"no padding", "2024-1-1", true},
		{"timestamp", "2024-01-01T00:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDate) {
				t.Errorf("expected INVALID_DATE, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantCode   Code
	}{
		{"single day", "2024-01-01", "2024-01-01", ""},
		{"default workshop range", "2024-01-01", "2024-01-08", ""},
		{"across month", "2024-01-29", "2024-02-03", ""},

		{"too wide", "2024-01-01", "2024-01-09", ErrCodeInvalidDateRange},
		{"reversed", "2024-01-05", "2024-01-01", ErrCodeInvalidDateRange},
		{"bad start", "yesterday", "2024-01-01", ErrCodeInvalidDate},
		{"bad end", "2024-01-01", "", ErrCodeInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDateRange(tt.start, tt.end)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateDateRange(%q, %q) code = %q, want %q (err=%v)", tt.start, tt.end, got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"demo key", "DEMO_KEY", false},
		{"long alnum", "abcdEFGH1234abcdEFGH1234abcdEFGH1234abcd", false},

		{"empty", "", true},
		{"space", "DEMO KEY", true},
		{"newline", "DEMO\nKEY", true},
		{"too long", string(make([]byte, 200)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAPIKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAPIKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://api.nasa.gov", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://api.nasa.gov", true},
		{"api.nasa.gov", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
