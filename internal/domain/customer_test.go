package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	cases := []struct {
		phone string
		valid bool
	}{
		{"", true},
		{"+1234567890", true},
		{"1234567890", true},
		{"+19876543210", true},
		{"123-456-7890", true},
		{"abc", false},
		{"12345", false},
		{"123-45-67890", false},
		{"+1234567890123456789", false},
		{"123 456 7890", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidPhone(tc.phone), "phone %q", tc.phone)
	}
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"alice@example.com", true},
		{"a.b+c@sub.example.org", true},
		{"", false},
		{"not-an-email", false},
		{"missing@tld", false},
		{"spaces in@example.com", false},
		{"@example.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidEmail(tc.email), "email %q", tc.email)
	}
}

func TestProductLowStock(t *testing.T) {
	assert.True(t, Product{Stock: 0}.LowStock())
	assert.True(t, Product{Stock: LowStockThreshold - 1}.LowStock())
	assert.False(t, Product{Stock: LowStockThreshold}.LowStock())
	assert.False(t, Product{Stock: 100}.LowStock())
}
