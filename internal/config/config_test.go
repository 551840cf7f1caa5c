package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestMustGetFirstEnv_FirstPresentWins(t *testing.T) {
	os.Setenv("TEST_KEY_PRIMARY", "primary")
	os.Setenv("TEST_KEY_FALLBACK", "fallback")
	defer os.Unsetenv("TEST_KEY_PRIMARY")
	defer os.Unsetenv("TEST_KEY_FALLBACK")

	result := mustGetFirstEnv("TEST_KEY_PRIMARY", "TEST_KEY_FALLBACK")
	if result != "primary" {
		t.Errorf("Expected 'primary', got %q", result)
	}
}

func TestMustGetFirstEnv_FallsBack(t *testing.T) {
	os.Unsetenv("TEST_KEY_PRIMARY")
	os.Setenv("TEST_KEY_FALLBACK", "fallback")
	defer os.Unsetenv("TEST_KEY_FALLBACK")

	result := mustGetFirstEnv("TEST_KEY_PRIMARY", "TEST_KEY_FALLBACK")
	if result != "fallback" {
		t.Errorf("Expected 'fallback', got %q", result)
	}
}

func TestMustGetFirstEnv_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when no variable is set")
		}
	}()

	os.Unsetenv("NONEXISTENT_VAR_A")
	os.Unsetenv("NONEXISTENT_VAR_B")
	mustGetFirstEnv("NONEXISTENT_VAR_A", "NONEXISTENT_VAR_B")
}
