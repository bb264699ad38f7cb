package validators

import (
	"net/mail"
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{4,20}$`)

// NormalizeEmail lowercases and trims an address, returning "" when it is
// not a bare address.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ""
	}
	return email
}

// NormalizeUsername lowercases a username and reports whether it is 4 to 20
// characters of latin letters, digits or underscores.
func NormalizeUsername(username string) (string, bool) {
	username = strings.ToLower(strings.TrimSpace(username))
	return username, usernamePattern.MatchString(username)
}
