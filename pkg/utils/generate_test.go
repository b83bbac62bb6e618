package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReferenceCode(t *testing.T) {
	pattern := regexp.MustCompile(`^HPB-\d{8}-\d{6}-\d{4}$`)

	code := GenerateReferenceCode()
	assert.Regexp(t, pattern, code)
}

func TestGenerateShareToken(t *testing.T) {
	first, err := GenerateShareToken()
	require.NoError(t, err)
	second, err := GenerateShareToken()
	require.NoError(t, err)

	assert.Len(t, first, 32) // 16 random bytes hex encoded
	assert.NotEqual(t, first, second)
}

func TestTrimNonEmpty(t *testing.T) {
	assert.Equal(t, []string{"Jane", "Sam"}, TrimNonEmpty([]string{" Jane ", "", "  ", "Sam"}))
	assert.Empty(t, TrimNonEmpty([]string{"", "   "}))
	assert.Empty(t, TrimNonEmpty(nil))
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 1, ParseInt("0", 1))
	assert.Equal(t, 1, ParseInt("-3", 1))
}
