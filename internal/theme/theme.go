// Package theme defines the light and dark color palettes.
package theme

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Palette maps semantic roles to hex colors.
type Palette struct {
	Background string `json:"background"`
	Card       string `json:"card"`
	Text       string `json:"text"`
	Primary    string `json:"primary"`
	Border     string `json:"border"`
}

var palettes = map[Mode]Palette{
	Light: {Background: "#ffffff", Card: "#f5f5f5", Text: "#333333", Primary: "#7a4f9e", Border: "#e0e0e0"},
	Dark:  {Background: "#1a1a1a", Card: "#2a2a2a", Text: "#e0e0e0", Primary: "#7a4f9e", Border: "#3a3a3a"},
}

// Theme is the active mode with its palette.
type Theme struct {
	Mode    Mode    `json:"mode"`
	Palette Palette `json:"palette"`
}

func FromDarkMode(dark bool) Theme {
	if dark {
		return Theme{Mode: Dark, Palette: palettes[Dark]}
	}
	return Theme{Mode: Light, Palette: palettes[Light]}
}

func (t Theme) IsDark() bool {
	return t.Mode == Dark
}

func (t Theme) Toggle() Theme {
	return FromDarkMode(!t.IsDark())
}
