package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"john@example.com",
		"jane.smith@dataanalytics.com",
		"a_b@mail.co.uk",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@domain",
		"@example.com",
		"user@.com",
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"555-123-4567",
		"(555) 123-4567",
		"555.123.4567",
		"5551234567",
	}
	for _, p := range valid {
		assert.True(t, IsValidPhone(p), p)
	}

	invalid := []string{
		"",
		"123",
		"555-123-456",
		"phone number",
	}
	for _, p := range invalid {
		assert.False(t, IsValidPhone(p), p)
	}
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2025-03-10"))
	assert.True(t, IsValidDate("2024-02-29")) // 闰年
	assert.True(t, IsValidDate("2025-12-31"))

	assert.False(t, IsValidDate("2025-02-29")) // 非闰年
	assert.False(t, IsValidDate("2025-13-01"))
	assert.False(t, IsValidDate("2025-04-31"))
	assert.False(t, IsValidDate("2025-00-10"))
	assert.False(t, IsValidDate("10-03-2025"))
	assert.False(t, IsValidDate(""))
}

func TestIsValidTime(t *testing.T) {
	assert.True(t, IsValidTime("00:00"))
	assert.True(t, IsValidTime("9:30"))
	assert.True(t, IsValidTime("14:00"))
	assert.True(t, IsValidTime("23:59"))

	assert.False(t, IsValidTime("24:00"))
	assert.False(t, IsValidTime("14:60"))
	assert.False(t, IsValidTime("noon"))
	assert.False(t, IsValidTime(""))
}
