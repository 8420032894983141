// ABOUTME: Tests for environment variable expansion in settings
// ABOUTME: Validates ${VAR} replacement for set, unset, and mixed patterns

package config

import (
	"testing"
)

func TestExpandEnv_Set(t *testing.T) {
	t.Setenv("TEST_LAYOUT_DIR", "/opt/layouts")
	result := expandEnv("${TEST_LAYOUT_DIR}/qwerty.yaml")
	if result != "/opt/layouts/qwerty.yaml" {
		t.Errorf("expandEnv = %q; want %q", result, "/opt/layouts/qwerty.yaml")
	}
}

func TestExpandEnv_Unset(t *testing.T) {
	result := expandEnv("${DEFINITELY_NOT_SET_12345}")
	if result != "" {
		t.Errorf("expandEnv = %q; want empty for unset var", result)
	}
}

func TestExpandEnv_NoPattern(t *testing.T) {
	result := expandEnv("plain string")
	if result != "plain string" {
		t.Errorf("expandEnv = %q; want %q", result, "plain string")
	}
}

func TestParse_ExpandsPaths(t *testing.T) {
	t.Setenv("TEST_THEMES", "/srv/themes")
	s, err := Parse([]byte("theme_file: ${TEST_THEMES}/night.yaml\n"), "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if s.ThemeFile != "/srv/themes/night.yaml" {
		t.Errorf("ThemeFile = %q", s.ThemeFile)
	}
}
