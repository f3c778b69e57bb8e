package middleware

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr error
	}{
		{"empty left to service", "", nil},
		{"valid", "ana@example.com", nil},
		{"valid with plus", "ana+cycles@example.co.uk", nil},
		{"surrounding spaces trimmed", "  ana@example.com ", nil},
		{"missing at", "ana.example.com", ErrEmailInvalid},
		{"missing local", "@example.com", ErrEmailInvalid},
		{"missing domain", "ana@", ErrEmailInvalid},
		{"two ats", "ana@b@example.com", ErrEmailInvalid},
		{"inner space", "ana maria@example.com", ErrEmailInvalid},
		{"control char", "ana\x00@example.com", ErrEmailInvalid},
		{"too long", strings.Repeat("a", 250) + "@example.com", ErrEmailTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateEmail(tt.email); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidateProfile(t *testing.T) {
	name := "Ana"
	longName := strings.Repeat("é", MaxNameLength+1)
	age, badAge := 29, 200

	tests := []struct {
		name    string
		n       *string
		age     *int
		wantErr error
	}{
		{"all nil", nil, nil, nil},
		{"valid", &name, &age, nil},
		{"long name", &longName, nil, ErrNameTooLong},
		{"age too high", nil, &badAge, ErrAgeOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateProfile(tt.n, tt.age); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfile = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateChatMessage(t *testing.T) {
	if err := ValidateChatMessage("What is PCOS?"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateChatMessage(strings.Repeat("x", MaxChatMessageLength+1)); !errors.Is(err, ErrMessageTooLong) {
		t.Errorf("err = %v, want ErrMessageTooLong", err)
	}
}

func TestValidateAttachmentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
		wantErr     bool
	}{
		{"application/pdf", "application/pdf", false},
		{"image/jpeg", "image/jpeg", false},
		{"text/plain; charset=utf-8", "text/plain", false},
		{"application/x-msdownload", "", true},
		{"", "", true},
		{"not a type", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, err := ValidateAttachmentType(tt.contentType)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("media type = %q, want %q", got, tt.want)
			}
		})
	}
}
