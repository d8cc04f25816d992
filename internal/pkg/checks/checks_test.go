package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "plain address", email: "ana@example.com", want: true},
		{name: "dots and dashes in local part", email: "ana.garcia-lopez@example.org", want: true},
		{name: "surrounding whitespace is trimmed", email: "  ana@example.com  ", want: true},
		{name: "missing at sign", email: "ana.example.com", want: false},
		{name: "missing tld", email: "ana@example", want: false},
		{name: "trailing dot", email: "ana@example.com.", want: false},
		{name: "empty", email: "", want: false},
		{name: "tld too long", email: "ana@example.abcdefghijk", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{name: "https", url: "https://example.com/events", want: true},
		{name: "http with query", url: "http://example.com/events?page=2", want: true},
		{name: "ftp", url: "ftp://files.example.com/poster.png", want: true},
		{name: "no scheme", url: "example.com/events", want: false},
		{name: "unsupported scheme", url: "gopher://example.com", want: false},
		{name: "embedded whitespace", url: "https://exam ple.com", want: false},
		{name: "trailing dot", url: "https://example.com.", want: false},
		{name: "empty", url: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.url))
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "letters and digits", password: "abcdef12", want: true},
		{name: "long mixed", password: "correct-horse-42-battery", want: true},
		{name: "too short", password: "abc123", want: false},
		{name: "letters only", password: "abcdefgh", want: false},
		{name: "digits only", password: "12345678", want: false},
		{name: "empty", password: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}
