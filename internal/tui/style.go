package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme holds the styles used by the screen.
type Theme struct {
	Normal   tcell.Style
	Edited   tcell.Style
	Selected tcell.Style
	Cursor   tcell.Style
	Status   tcell.Style
	Message  tcell.Style
}

// DefaultTheme builds the dark theme. The selection background is a blend
// of the base background and the accent so selected wide-glyph text stays
// readable instead of inverting.
func DefaultTheme() Theme {
	bg := colorful.Color{R: 0.07, G: 0.07, B: 0.10}
	fg := colorful.Color{R: 0.85, G: 0.85, B: 0.82}
	accent := colorful.Color{R: 0.25, G: 0.55, B: 0.95}
	amber := colorful.Color{R: 0.95, G: 0.75, B: 0.25}

	base := tcell.StyleDefault.
		Background(toTcell(bg)).
		Foreground(toTcell(fg))

	return Theme{
		Normal:   base,
		Edited:   base.Foreground(toTcell(amber)),
		Selected: base.Background(toTcell(bg.BlendLab(accent, 0.35))),
		Cursor:   base.Foreground(toTcell(accent)).Bold(true),
		Status:   tcell.StyleDefault.Background(toTcell(bg.BlendLab(fg, 0.12))).Foreground(toTcell(fg)),
		Message:  tcell.StyleDefault.Background(toTcell(bg.BlendLab(fg, 0.12))).Foreground(toTcell(amber)),
	}
}

// toTcell converts a colorful color to a tcell RGB color.
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
