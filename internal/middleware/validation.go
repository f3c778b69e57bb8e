package middleware

import (
	"errors"
	"mime"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation limits.
const (
	// MaxEmailLength follows the RFC 5321 path limit.
	MaxEmailLength = 254

	// MaxNameLength bounds the profile name.
	MaxNameLength = 100

	// MaxChatMessageLength bounds a single chat question.
	MaxChatMessageLength = 4000
)

// Validation errors.
var (
	ErrEmailTooLong         = errors.New("email exceeds maximum length")
	ErrEmailInvalid         = errors.New("email is not a valid address")
	ErrNameTooLong          = errors.New("name exceeds maximum length")
	ErrAgeOutOfRange        = errors.New("age is out of range")
	ErrMessageTooLong       = errors.New("message exceeds maximum length")
	ErrUnsupportedMediaType = errors.New("unsupported attachment type")
)

// ValidateEmail performs a light shape check. Empty input is left to the
// service layer, which reports it as a missing field.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}
	if len(email) > MaxEmailLength {
		return ErrEmailTooLong
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return ErrEmailInvalid
	}
	for _, r := range email {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrEmailInvalid
		}
	}
	return nil
}

// ValidateProfile checks the free-form profile fields.
func ValidateProfile(name *string, age *int) error {
	if name != nil && utf8.RuneCountInString(*name) > MaxNameLength {
		return ErrNameTooLong
	}
	if age != nil && (*age < 0 || *age > 150) {
		return ErrAgeOutOfRange
	}
	return nil
}

// ValidateChatMessage bounds the chat question length.
func ValidateChatMessage(message string) error {
	if utf8.RuneCountInString(message) > MaxChatMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// allowedAttachmentTypes are the media types the model accepts inline.
var allowedAttachmentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"image/heic":      true,
	"image/heif":      true,
	"text/plain":      true,
}

// ValidateAttachmentType checks a declared attachment Content-Type and
// returns it without parameters.
func ValidateAttachmentType(contentType string) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", ErrUnsupportedMediaType
	}
	if !allowedAttachmentTypes[mediaType] {
		return "", ErrUnsupportedMediaType
	}
	return mediaType, nil
}
