package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordFormat(t *testing.T) {
	t.Parallel()
	stored, err := HashPassword("abc123")
	require.NoError(t, err)

	parts := strings.Split(stored, ".")
	require.Len(t, parts, 2)
	assert.Len(t, parts[0], 128) // 64-byte key, hex
	assert.Len(t, parts[1], 32)  // 16-byte salt, hex
}

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()
	stored, err := HashPassword("abc123")
	require.NoError(t, err)

	ok, err := ComparePasswords("abc123", stored)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePasswords("abc124", stored)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	t.Parallel()
	a, err := HashPassword("secret1")
	require.NoError(t, err)
	b, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestComparePasswordsMalformedRecord(t *testing.T) {
	t.Parallel()
	_, err := ComparePasswords("abc123", "not-a-record")
	assert.Error(t, err)

	_, err = ComparePasswords("abc123", "zz.zz")
	assert.Error(t, err)
}
