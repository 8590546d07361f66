package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("PATHFINDER_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when PATHFINDER_DARK_MODE=1")
	}

	t.Setenv("PATHFINDER_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when PATHFINDER_DARK_MODE is unset")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for a black COLORFGBG background")
	}
}

func TestThemeByName(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("PATHFINDER_DARK_MODE", "")

	if !ThemeByName("dark").IsDark {
		t.Error("expected dark theme")
	}
	if ThemeByName("LIGHT").IsDark {
		t.Error("expected light theme")
	}
	if ThemeByName("auto").IsDark {
		t.Error("expected auto to detect light theme")
	}
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(LightTheme())
	if got := s.RenderDivider(0); got == "" {
		t.Error("expected a default-width divider")
	}
}
