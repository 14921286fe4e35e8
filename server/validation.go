package server

import (
	"regexp"
	"strings"
)

var (
	emailRegex      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex   = regexp.MustCompile(`^[a-zA-Z0-9_]{3,30}$`)
	inviteCodeRegex = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)
)

// sanitizeString trims, caps length and strips angle brackets from
// free-form input before it reaches storage. Length is counted in runes so
// truncation never produces invalid UTF-8.
func sanitizeString(input string, maxLength int) string {
	s := strings.TrimSpace(input)
	if runes := []rune(s); len(runes) > maxLength {
		s = string(runes[:maxLength])
	}
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}

func validateEmail(email string) bool {
	return emailRegex.MatchString(email) && len(email) <= 254
}

func validateUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

func validatePassword(password string) bool {
	return len(password) >= 8 && len(password) <= 100
}

// validateInviteCodeFormat enforces the registration-side code format,
// stricter than the storage-level minimum of 4 characters.
func validateInviteCodeFormat(code string) bool {
	return inviteCodeRegex.MatchString(code)
}
