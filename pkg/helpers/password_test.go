package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	plain := "Sup3rSecret"

	h1, err := HashPassword(plain)
	require.NoError(t, err)
	h2, err := HashPassword(plain)
	require.NoError(t, err)

	// Each call salts independently, so the digests differ as strings but
	// both verify against the same plaintext.
	assert.NotEqual(t, h1, h2)
	assert.True(t, CompareHashAndPassword(h1, plain))
	assert.True(t, CompareHashAndPassword(h2, plain))
}

func TestCompareHashAndPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name  string
		hash  string
		plain string
		want  bool
	}{
		{name: "matching password", hash: hash, plain: "correct-password", want: true},
		{name: "wrong password", hash: hash, plain: "wrong-password", want: false},
		{name: "malformed digest", hash: "not-a-bcrypt-digest", plain: "anything", want: false},
		{name: "empty digest", hash: "", plain: "anything", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareHashAndPassword(tt.hash, tt.plain))
		})
	}
}
