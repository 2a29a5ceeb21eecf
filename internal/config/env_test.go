package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("AS_TEST_STRING", "value")
	t.Setenv("AS_TEST_EMPTY", "")

	assert.Equal(t, "value", GetEnv("AS_TEST_STRING", "default"))
	assert.Equal(t, "default", GetEnv("AS_TEST_EMPTY", "default"))
	assert.Equal(t, "default", GetEnv("AS_TEST_MISSING_STRING", "default"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback int
		expected int
	}{
		{name: "valid integer", value: "42", expected: 42},
		{name: "negative integer", value: "-10", expected: -10},
		{name: "invalid integer", value: "ten", fallback: 10, expected: 10},
		{name: "unset", value: "", fallback: 5, expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AS_TEST_INT", tt.value)
			assert.Equal(t, tt.expected, GetEnvInt("AS_TEST_INT", tt.fallback))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "30s", expected: 30 * time.Second},
		{name: "compound duration", value: "1h30m15s", expected: time.Hour + 30*time.Minute + 15*time.Second},
		{name: "invalid duration", value: "soon", fallback: 5 * time.Second, expected: 5 * time.Second},
		{name: "unset", value: "", fallback: time.Minute, expected: time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AS_TEST_DURATION", tt.value)
			assert.Equal(t, tt.expected, GetEnvDuration("AS_TEST_DURATION", tt.fallback))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback bool
		expected bool
	}{
		{name: "true", value: "true", expected: true},
		{name: "false overrides default", value: "false", fallback: true, expected: false},
		{name: "1 as true", value: "1", expected: true},
		{name: "0 as false", value: "0", fallback: true, expected: false},
		{name: "invalid keeps default", value: "yes please", fallback: true, expected: true},
		{name: "unset keeps default", value: "", fallback: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("AS_TEST_BOOL", tt.value)
			assert.Equal(t, tt.expected, GetEnvBool("AS_TEST_BOOL", tt.fallback))
		})
	}
}
