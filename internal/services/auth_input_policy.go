package services

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const maxDisplayNameLength = 64

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrRegistrationInvalid    = errors.New("registration input invalid")
	ErrDisplayNameTooLong     = errors.New("display name too long")
)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func NormalizeDisplayName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) > maxDisplayNameLength {
		return "", ErrDisplayNameTooLong
	}
	return name, nil
}

// NormalizeRegistrationInput requires all three fields; password strength is checked separately.
func NormalizeRegistrationInput(nameRaw string, emailRaw string, passwordRaw string) (string, string, string, error) {
	name, err := NormalizeDisplayName(nameRaw)
	if err != nil {
		return "", "", "", err
	}
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil || name == "" {
		return "", "", "", ErrRegistrationInvalid
	}
	return name, email, password, nil
}
