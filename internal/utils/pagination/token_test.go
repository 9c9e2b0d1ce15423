package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, int64(42), decodedID, "ID should match after decode")

	// Test case 2: Zero values
	zeroToken := EncodeToken(time.Time{}, 0)
	decodedZeroTime, decodedZeroID, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero values should not return an error")
	assert.Equal(t, time.Time{}, decodedZeroTime, "Zero time should match after decode")
	assert.Equal(t, int64(0), decodedZeroID, "Zero ID should match after decode")

	// Test case 3: Current time values
	now := time.Now().UTC()
	nowToken := EncodeToken(now, 9876543210)
	decodedNow, decodedBigID, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
	assert.Equal(t, int64(9876543210), decodedBigID, "Large ID should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyNi0wNS0xNVQwMDowMDowMFo=" // Base64 encoded timestamp without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid date format
	invalidDateToken := "bm90YWRhdGV8NDI=" // Base64 encoded "notadate|42"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention date parsing issue")

	// Test invalid ID
	invalidIDToken := "MjAyNi0wNS0xNVQwMDowMDowMFp8bm90YW51bWJlcg==" // Base64 encoded "2026-05-15T00:00:00Z|notanumber"
	_, _, err = DecodeToken(invalidIDToken)
	assert.Error(t, err, "Should return an error for a non-numeric ID")
	assert.Contains(t, err.Error(), "id parse", "Error should mention ID parsing issue")
}
