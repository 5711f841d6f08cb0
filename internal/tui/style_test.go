package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

func TestToTcellRoundsToRGB(t *testing.T) {
	c := colorful.Color{R: 1, G: 0, B: 0}
	got := toTcell(c)
	r, g, b := got.RGB()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("toTcell(red) = %d,%d,%d", r, g, b)
	}
}

func TestToTcellClampsOutOfGamut(t *testing.T) {
	// Blending in Lab space can leave RGB slightly out of range.
	c := colorful.Color{R: 1.2, G: -0.1, B: 0.5}
	got := toTcell(c)
	r, g, b := got.RGB()
	if r != 255 || g != 0 {
		t.Errorf("clamped = %d,%d,%d", r, g, b)
	}
}

func TestDefaultThemeStylesDistinct(t *testing.T) {
	th := DefaultTheme()
	if th.Normal == th.Selected {
		t.Error("selected style must differ from normal")
	}
	if th.Normal == th.Edited {
		t.Error("edited style must differ from normal")
	}
	if th.Normal == (tcell.Style{}) {
		t.Error("normal style unset")
	}
}
