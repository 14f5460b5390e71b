package theme

import "testing"

func TestToggle(t *testing.T) {
	light := FromDarkMode(false)
	if light.IsDark() || light.Palette.Background != "#ffffff" {
		t.Fatalf("unexpected light theme %+v", light)
	}
	dark := light.Toggle()
	if !dark.IsDark() || dark.Palette.Background != "#1a1a1a" || dark.Palette.Text != "#e0e0e0" {
		t.Fatalf("unexpected dark theme %+v", dark)
	}
	if dark.Toggle() != light {
		t.Fatalf("toggling twice should return to light")
	}
}
