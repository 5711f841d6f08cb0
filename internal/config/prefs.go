// Package config holds persisted display preferences.
package config

// DefaultFontSize is the font size used until the user changes it.
const DefaultFontSize = 26

// Prefs are the user's display preferences. They persist alongside the
// entry list but are not part of undo history.
type Prefs struct {
	// FontSize is the display font size in points. Terminal hosts cannot
	// change the font themselves; the preference still persists for
	// export-side rendering.
	FontSize int
}

// Default returns the default preferences.
func Default() Prefs {
	return Prefs{FontSize: DefaultFontSize}
}

// Normalized replaces out-of-range values with defaults.
func (p Prefs) Normalized() Prefs {
	if p.FontSize < 1 {
		p.FontSize = DefaultFontSize
	}
	return p
}
