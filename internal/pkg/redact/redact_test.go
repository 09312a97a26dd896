package redact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "regular", in: "alice@example.com", want: "al***@example.com"},
		{name: "short_local", in: "ab@example.com", want: "***@example.com"},
		{name: "single_char", in: "a@example.com", want: "***@example.com"},
		{name: "not_an_email", in: "not-an-email", want: "***"},
		{name: "two_at_signs", in: "a@b@c", want: "***"},
		{name: "empty", in: "", want: "***"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Email(tc.in))
		})
	}
}

func TestTokenAndPassword_NeverEmpty(t *testing.T) {
	t.Parallel()

	require.Equal(t, "[REDACTED_TOKEN]", Token())
	require.Equal(t, "[REDACTED_PASSWORD]", Password())
}
