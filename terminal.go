/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Seednode/partykiosk/kiosk"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"golang.org/x/sync/errgroup"
)

// Motion runs in pixels; one terminal cell counts as a cellWidth by
// cellHeight block.
const (
	cellWidth  = 8
	cellHeight = 16
)

var glyph = []string{
	"╭──────────╮",
	"│ partybox │",
	"╰──────────╯",
}

var (
	logoStyle     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 79, 163)).Bold(true)
	hintStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	questionStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bonusStyle    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 216, 79)).Bold(true)
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// Terminal draws kiosk frames onto a tcell screen and implements kiosk.View.
type Terminal struct {
	screen tcell.Screen

	mu   sync.Mutex
	mode    kiosk.Mode
	logo    rect
	buttons tcell.ButtonMask
}

func newTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func glyphWidth() int {
	return runewidth.StringWidth(glyph[0])
}

func (t *Terminal) GlyphSize() kiosk.Size {
	return kiosk.Size{
		W: float64(glyphWidth() * cellWidth),
		H: float64(len(glyph) * cellHeight),
	}
}

func (t *Terminal) viewport() kiosk.Size {
	w, h := t.screen.Size()

	return kiosk.Size{W: float64(w * cellWidth), H: float64(h * cellHeight)}
}

func (t *Terminal) Render(f kiosk.Frame) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.mode = f.Mode
	t.logo = rect{}

	t.screen.Clear()

	w, h := t.screen.Size()

	switch f.Mode {
	case kiosk.Logo:
		x := (w - glyphWidth()) / 2
		y := (h - len(glyph)) / 2
		t.logo = rect{x: x, y: y, w: glyphWidth(), h: len(glyph)}

		t.drawGlyph(x, y, logoStyle)
		t.drawCentered(y+len(glyph)+1, "press Enter or click to start", hintStyle)

	case kiosk.Questions:
		style := questionStyle
		if f.Bonus {
			style = bonusStyle
		}

		lines := wrap(f.Text, max(w-8, 10))
		top := (h - len(lines)) / 2

		if f.Bonus {
			t.drawCentered(top-2, "★ BONUS ★", bonusStyle)
		}

		for i, line := range lines {
			t.drawCentered(top+i, line, style)
		}

		if f.Total > 0 {
			t.drawCentered(h-2, fmt.Sprintf("%d / %d", f.Cursor+1, f.Total), hintStyle)
		}

	case kiosk.Screensaver:
		style := logoStyle
		if f.HasHue {
			style = style.Foreground(hueColor(f.Hue))
		}

		t.drawGlyph(int(f.X)/cellWidth, int(f.Y)/cellHeight, style)
	}

	t.screen.Show()
}

// target reports which area a click at cell (x, y) landed on.
func (t *Terminal) target(x, y int) kiosk.Area {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.mode {
	case kiosk.Logo:
		if t.logo.contains(x, y) {
			return kiosk.AreaLogo
		}
	case kiosk.Questions:
		return kiosk.AreaQuestions
	}

	return kiosk.AreaNone
}

// pressed records buttons and reports whether Button1 just went down.
func (t *Terminal) pressed(buttons tcell.ButtonMask) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	down := buttons&tcell.Button1 != 0 && t.buttons&tcell.Button1 == 0
	t.buttons = buttons

	return down
}

func (t *Terminal) drawGlyph(x, y int, style tcell.Style) {
	for i, line := range glyph {
		t.drawString(x, y+i, line, style)
	}
}

func (t *Terminal) drawCentered(y int, s string, style tcell.Style) {
	w, _ := t.screen.Size()

	t.drawString((w-runewidth.StringWidth(s))/2, y, s, style)
}

func (t *Terminal) drawString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}

func hueColor(hue float64) tcell.Color {
	r, g, b := colorful.Hsv(hue, 1, 1).RGB255()

	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// wrap breaks text into lines no wider than width cells.
func wrap(text string, width int) []string {
	var (
		lines []string
		line  strings.Builder
	)

	for _, word := range strings.Fields(text) {
		switch {
		case line.Len() == 0:
			line.WriteString(word)
		case runewidth.StringWidth(line.String())+1+runewidth.StringWidth(word) <= width:
			line.WriteByte(' ')
			line.WriteString(word)
		default:
			lines = append(lines, line.String())
			line.Reset()
			line.WriteString(word)
		}
	}

	if line.Len() > 0 {
		lines = append(lines, line.String())
	}

	return lines
}

// translate maps a tcell event onto a kiosk event; ok is false for events
// the kiosk does not care about.
func (t *Terminal) translate(ev tcell.Event) (kiosk.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()

		return kiosk.Event{Kind: kiosk.Resize, Viewport: t.viewport()}, true

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEnter:
			return kiosk.Event{Kind: kiosk.KeyDown, Key: kiosk.KeyEnter}, true
		case tcell.KeyRune:
			return kiosk.Event{Kind: kiosk.KeyDown, Key: string(ev.Rune())}, true
		default:
			return kiosk.Event{Kind: kiosk.KeyDown, Key: ev.Name()}, true
		}

	case *tcell.EventMouse:
		if t.pressed(ev.Buttons()) {
			x, y := ev.Position()

			return kiosk.Event{Kind: kiosk.PointerDown, Target: t.target(x, y)}, true
		}

		// Drags and releases only count as activity.
		return kiosk.Event{Kind: kiosk.PointerMove}, true
	}

	return kiosk.Event{}, false
}

func isQuit(ev tcell.Event) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}

	return key.Key() == tcell.KeyCtrlC || key.Key() == tcell.KeyEscape
}

// runTerminal drives a kiosk on screen until ctx is done or the user quits.
func runTerminal(ctx context.Context, cfg *Config, screen tcell.Screen) error {
	term := newTerminal(screen)

	machine := kiosk.NewMachine(term, cfg.kioskOptions())
	loop := kiosk.NewLoop(machine, cfg.fps, func(format string, args ...any) {
		logf(cfg, format, args...)
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	stopped := make(chan struct{})

	g.Go(func() error {
		defer close(stopped)

		return loop.Run(gctx, kiosk.NewSource(cfg.questions), cfg.bonus)
	})

	g.Go(func() error {
		if err := loop.Send(gctx, kiosk.Event{Kind: kiosk.Resize, Viewport: term.viewport()}); err != nil {
			return nil
		}

		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}

			if isQuit(ev) {
				cancel()

				return nil
			}

			kev, ok := term.translate(ev)
			if !ok {
				continue
			}

			if err := loop.Send(gctx, kev); err != nil {
				return nil
			}
		}
	})

	g.Go(func() error {
		<-stopped

		screen.Fini()

		return nil
	})

	return g.Wait()
}

// RunTerminal shows the kiosk in the current terminal instead of serving it.
func RunTerminal(ctx context.Context, cfg *Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}

	if err := screen.Init(); err != nil {
		return err
	}

	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	logf(cfg, "START: partykiosk v%s (terminal)", releaseVersion)

	return runTerminal(ctx, cfg, screen)
}
