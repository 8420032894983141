// ABOUTME: Tests for human-readable config explanation rendering
// ABOUTME: Covers empty, default, and gesture-disabled settings

package config

import (
	"strings"
	"testing"
)

func TestExplain_EmptySettings(t *testing.T) {
	t.Parallel()

	result := Explain(&Settings{})
	for _, section := range []string{"General", "Scrollback", "Gesture"} {
		if !strings.Contains(result, section) {
			t.Errorf("missing %s section header", section)
		}
	}
	if strings.Contains(result, "Theme:") {
		t.Error("empty settings should not list a theme")
	}
}

func TestExplain_Nil(t *testing.T) {
	t.Parallel()
	if Explain(nil) != Explain(&Settings{}) {
		t.Error("nil settings should render like empty settings")
	}
}

func TestExplain_Defaults(t *testing.T) {
	t.Parallel()

	result := Explain(Defaults())
	checks := []string{
		"Theme:          default",
		"FrameRate:      60 Hz",
		"OutputSlots:    20",
		"HistorySize:    50",
		"Panel:     512x512 px",
		"MaxHeight: 8192 px",
		"Shakes:    10",
		"Reset:     200ms",
	}
	for _, want := range checks {
		if !strings.Contains(result, want) {
			t.Errorf("result missing %q\n%s", want, result)
		}
	}
}

func TestExplain_GestureDisabled(t *testing.T) {
	t.Parallel()

	s := Defaults()
	s.Gesture.Enabled = false
	result := Explain(s)
	if !strings.Contains(result, "Enabled:   false") {
		t.Error("should report gesture disabled")
	}
	if strings.Contains(result, "Threshold:") {
		t.Error("disabled gesture should not list tuning")
	}
}
