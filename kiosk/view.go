/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import "fmt"

// Mode is the screen currently shown.
type Mode int

const (
	Logo Mode = iota
	Questions
	Screensaver
)

func (m Mode) String() string {
	switch m {
	case Questions:
		return "questions"
	case Screensaver:
		return "screensaver"
	default:
		return "logo"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "logo":
		*m = Logo
	case "questions":
		*m = Questions
	case "screensaver":
		*m = Screensaver
	default:
		return fmt.Errorf("unknown mode %q", text)
	}

	return nil
}

// Frame is everything a view needs to draw the kiosk.
type Frame struct {
	Mode   Mode
	Text   string
	Bonus  bool
	Cursor int
	Total  int
	X, Y   float64
	Hue    float64
	HasHue bool
}

// View draws frames and exposes the rendered size of the screensaver glyph.
type View interface {
	Render(Frame)
	GlyphSize() Size
}
