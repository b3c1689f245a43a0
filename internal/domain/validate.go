package domain

import (
	"net/mail"
	"regexp"
	"time"
)

// DateLayout is the wire format for all date-only fields.
const DateLayout = "2006-01-02"

// ParseDate parses a date-only field. The input must round-trip exactly,
// so "2024-02-30" and "2024-1-5" are both rejected.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// phoneRe matches Kenyan mobile numbers, e.g. +254712345678.
var phoneRe = regexp.MustCompile(`^\+254[17][0-9]{8}$`)

// IsValidPhone reports whether s is a well-formed Kenyan phone number.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// IsValidEmail reports whether s is a well-formed email address.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// UsernameFromEmail derives the login name from the email local part.
func UsernameFromEmail(email string) string {
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			return email[:i]
		}
	}
	return email
}
