/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Seednode/partykiosk/kiosk"
	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()

	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	s.SetSize(w, h)

	return s
}

func readLine(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()

	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}

	return b.String()
}

func screenText(s tcell.SimulationScreen) string {
	_, h := s.Size()

	lines := make([]string, h)
	for y := range h {
		lines[y] = readLine(s, y)
	}

	return strings.Join(lines, "\n")
}

func TestTerminalRendersLogo(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	defer s.Fini()

	term := newTerminal(s)
	term.Render(kiosk.Frame{Mode: kiosk.Logo})

	if line := readLine(s, 11); !strings.Contains(line, "│ partybox │") {
		t.Fatalf("logo not centered, row 11 = %q", line)
	}

	if got := term.target(40, 11); got != kiosk.AreaLogo {
		t.Fatalf("click on logo hit %v", got)
	}
	if got := term.target(0, 0); got != kiosk.AreaNone {
		t.Fatalf("click off logo hit %v", got)
	}
}

func TestTerminalRendersQuestion(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	defer s.Fini()

	term := newTerminal(s)
	term.Render(kiosk.Frame{Mode: kiosk.Questions, Text: "Toast to the hosts!", Bonus: true, Cursor: 1, Total: 3})

	text := screenText(s)
	for _, want := range []string{"Toast to the hosts!", "BONUS", "2 / 3"} {
		if !strings.Contains(text, want) {
			t.Fatalf("screen missing %q:\n%s", want, text)
		}
	}

	if got := term.target(0, 0); got != kiosk.AreaQuestions {
		t.Fatalf("click during questions hit %v", got)
	}
}

func TestTerminalRendersScreensaver(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	defer s.Fini()

	term := newTerminal(s)
	term.Render(kiosk.Frame{Mode: kiosk.Screensaver, X: 10 * cellWidth, Y: 2 * cellHeight, Hue: 200, HasHue: true})

	if r, _, _, _ := s.GetContent(10, 2); r != '╭' {
		t.Fatalf("expected glyph corner at (10,2), got %q", r)
	}
	if line := readLine(s, 3); !strings.HasPrefix(line[strings.Index(line, "│"):], "│ partybox │") {
		t.Fatalf("glyph body missing, row 3 = %q", line)
	}
}

func TestTerminalSizes(t *testing.T) {
	s := newSimScreen(t, 100, 30)
	defer s.Fini()

	term := newTerminal(s)

	if got := term.viewport(); got != (kiosk.Size{W: 100 * cellWidth, H: 30 * cellHeight}) {
		t.Fatalf("unexpected viewport %+v", got)
	}
	if got := term.GlyphSize(); got != (kiosk.Size{W: 12 * cellWidth, H: 3 * cellHeight}) {
		t.Fatalf("unexpected glyph size %+v", got)
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("what is the best song of the night so far", 12)

	for _, line := range lines {
		if len(line) > 12 {
			t.Fatalf("line %q wider than 12", line)
		}
	}
	if strings.Join(lines, " ") != "what is the best song of the night so far" {
		t.Fatalf("wrap lost words: %q", lines)
	}
	if wrap("   ", 10) != nil {
		t.Fatal("blank text should wrap to nothing")
	}
}

func TestRunTerminal(t *testing.T) {
	s := newSimScreen(t, 80, 24)

	cfg := testConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- runTerminal(ctx, cfg, s)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for !strings.Contains(screenText(s), "partybox") {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("timed out waiting for logo")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run terminal: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("terminal did not stop")
	}
}

func TestTerminalClickDragRelease(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	defer s.Fini()

	term := newTerminal(s)
	term.Render(kiosk.Frame{Mode: kiosk.Questions, Text: "Best song of the night?", Total: 3})

	events := []tcell.Event{
		tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(11, 10, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(12, 10, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(12, 10, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(20, 12, tcell.Button1, tcell.ModNone),
	}

	var kinds []kiosk.EventKind
	for _, ev := range events {
		kev, ok := term.translate(ev)
		if !ok {
			t.Fatalf("mouse event %v not translated", ev)
		}
		kinds = append(kinds, kev.Kind)
	}

	want := []kiosk.EventKind{kiosk.PointerDown, kiosk.PointerMove, kiosk.PointerMove, kiosk.PointerMove, kiosk.PointerDown}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event %d: got %v, want %v (all: %v)", i, kinds[i], want[i], kinds)
		}
	}
}

func TestTerminalClickTargets(t *testing.T) {
	s := newSimScreen(t, 80, 24)
	defer s.Fini()

	term := newTerminal(s)
	term.Render(kiosk.Frame{Mode: kiosk.Logo})

	kev, _ := term.translate(tcell.NewEventMouse(40, 11, tcell.Button1, tcell.ModNone))
	if kev.Kind != kiosk.PointerDown || kev.Target != kiosk.AreaLogo {
		t.Fatalf("click on logo translated to %+v", kev)
	}

	term.translate(tcell.NewEventMouse(40, 11, tcell.ButtonNone, tcell.ModNone))

	kev, _ = term.translate(tcell.NewEventMouse(0, 0, tcell.Button1, tcell.ModNone))
	if kev.Kind != kiosk.PointerDown || kev.Target != kiosk.AreaNone {
		t.Fatalf("click off logo translated to %+v", kev)
	}
}
