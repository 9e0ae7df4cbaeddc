package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the styles the editor draws with.
type Theme struct {
	Text      tcell.Style
	Label     tcell.Style
	Selection tcell.Style
	Status    tcell.Style
	Prompt    tcell.Style
	Error     tcell.Style
}

// NewTheme derives a theme from an accent and a selection colour.
func NewTheme(accent, selection colorful.Color) Theme {
	acc := toTcell(accent)
	sel := toTcell(selection)

	// Status text is dark on light accents and light on dark ones.
	fg := tcell.ColorWhite
	if _, _, l := accent.Hsl(); l > 0.6 {
		fg = tcell.ColorBlack
	}

	return Theme{
		Text:      tcell.StyleDefault,
		Label:     tcell.StyleDefault.Foreground(acc),
		Selection: tcell.StyleDefault.Background(sel).Foreground(tcell.ColorWhite),
		Status:    tcell.StyleDefault.Background(acc).Foreground(fg),
		Prompt:    tcell.StyleDefault.Bold(true),
		Error:     tcell.StyleDefault.Foreground(tcell.ColorRed),
	}
}

// DefaultTheme matches the default configuration colours.
func DefaultTheme() Theme {
	accent, _ := colorful.Hex("#d4a017")
	selection, _ := colorful.Hex("#3a5f8a")
	return NewTheme(accent, selection)
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
