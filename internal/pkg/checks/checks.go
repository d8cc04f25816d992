// Package checks holds the shared format validations used by the auth and
// event services.
package checks

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

var (
	emailExp = regexp.MustCompile(`^([0-9a-zA-Z]([-.\w]*[0-9a-zA-Z])*@([0-9a-zA-Z][-\w]*[0-9a-zA-Z]\.)+[a-zA-Z]{2,9})$`)
	urlExp   = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)

	// Lookaheads need regexp2; the stdlib engine doesn't support them.
	passwordExp = regexp2.MustCompile(`^(?=.*[A-Za-z])(?=.*\d).{8,}$`, regexp2.None)
)

// IsValidEmail reports whether email has a local@domain shape with a TLD of
// 2-9 letters. A trailing dot is rejected before matching.
func IsValidEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" || strings.HasSuffix(trimmed, ".") {
		return false
	}

	return emailExp.MatchString(trimmed)
}

// IsValidURL reports whether url is an http, https or ftp URL. A trailing dot
// is rejected before matching.
func IsValidURL(url string) bool {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" || strings.HasSuffix(trimmed, ".") {
		return false
	}

	return urlExp.MatchString(trimmed)
}

// IsStrongPassword reports whether password is at least 8 characters long and
// contains at least one letter and one digit.
func IsStrongPassword(password string) bool {
	ok, err := passwordExp.MatchString(password)
	if err != nil {
		return false
	}

	return ok
}
