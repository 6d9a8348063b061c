package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArowuTest/voting-whitelist-loader/internal/models"
)

func TestValidateAadhaar(t *testing.T) {
	valid := []string{"123456789012", "000000000000", "999999999999"}
	for _, s := range valid {
		assert.True(t, ValidateAadhaar(s), s)
	}

	invalid := []string{
		"",
		"12345",
		"12345678901",
		"1234567890123",
		"12345678901a",
		" 123456789012",
		"123456789012 ",
		"123456789012\n",
		"1234-5678-9012",
		"１２３４５６７８９０１２", // full-width digits
		"+23456789012",
	}
	for _, s := range invalid {
		assert.False(t, ValidateAadhaar(s), "%q", s)
	}
}

func TestValidateAadhaar_AllTwelveDigitStrings(t *testing.T) {
	for d := '0'; d <= '9'; d++ {
		s := strings.Repeat(string(d), 12)
		assert.True(t, ValidateAadhaar(s), s)
		assert.False(t, ValidateAadhaar(s[:11]), s[:11])
		assert.False(t, ValidateAadhaar(s+string(d)), s+string(d))
	}
}

func TestValidateStruct_WhitelistEntry(t *testing.T) {
	now := time.Now()

	require.NoError(t, ValidateStruct(models.NewWhitelistEntry("123456789012", now)))
	require.Error(t, ValidateStruct(models.NewWhitelistEntry("12345", now)))
	require.Error(t, ValidateStruct(models.NewWhitelistEntry("", now)))
}
