package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateShortID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateShortID()
		require.Len(t, id, 20)
		require.GreaterOrEqual(t, id[0], byte('a'))
		require.LessOrEqual(t, id[0], byte('z'))
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestValidateEmail(t *testing.T) {
	require.True(t, ValidateEmail("user@example.com"))
	require.True(t, ValidateEmail("first.last+tag@sub.example.co"))
	require.False(t, ValidateEmail("not-an-email"))
	require.False(t, ValidateEmail("user@"))
	require.False(t, ValidateEmail(""))
}

func TestPtrHelpers(t *testing.T) {
	v := Ptr("hello")
	require.Equal(t, "hello", *v)
	require.Equal(t, "hello", PtrValue(v, "fallback"))
	require.Equal(t, "fallback", PtrValue[string](nil, "fallback"))
}
