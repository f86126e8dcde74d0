package validation

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
		{name: "simple address", email: "a@b.co", want: true},
		{name: "dotted local part and subdomain", email: "a.b@sub.example.com", want: true},
		{name: "dashed local part", email: "first-last@example.com", want: true},
		{name: "upper case", email: "X@Y.com", want: true},
		{name: "not an email", email: "not-an-email", want: false},
		{name: "missing tld", email: "a@b", want: false},
		{name: "empty", email: "", want: false},
		{name: "double separator", email: "a..b@example.com", want: false},
		{name: "non-ascii does not panic", email: "usuário@exemplo.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.email))
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "seven chars with case transition", password: "Abcdefg", want: true},
		{name: "lower then upper", password: "abcdefG", want: true},
		{name: "no case transition", password: "abcdefg", want: false},
		{name: "all upper", password: "ABCDEFG", want: false},
		{name: "too short", password: "Ab", want: false},
		{name: "six chars", password: "Abcdef", want: false},
		{name: "empty", password: "", want: false},
		// The rule is length plus mixed case; digits are not required.
		{name: "digits without letters", password: "1234567", want: false},
		{name: "mixed case no digits", password: "PassWord", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStrongPassword(tt.password))
		})
	}
}
