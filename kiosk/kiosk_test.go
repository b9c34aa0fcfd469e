/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"math/rand/v2"
	"strconv"
	"time"
)

type fakeView struct {
	frames []Frame
	glyph  Size
}

func (v *fakeView) Render(f Frame) {
	v.frames = append(v.frames, f)
}

func (v *fakeView) GlyphSize() Size {
	return v.glyph
}

func (v *fakeView) last() Frame {
	if len(v.frames) == 0 {
		return Frame{}
	}

	return v.frames[len(v.frames)-1]
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func prompts(prefix string, n int, tier Tier) []Prompt {
	out := make([]Prompt, 0, n)
	for i := 0; i < n; i++ {
		id := prefix + strconv.Itoa(i)
		out = append(out, Prompt{ID: id, Text: "prompt " + id, Tier: tier})
	}

	return out
}

func hasDuplicateIDs(round []Prompt) bool {
	seen := make(map[string]bool, len(round))
	for _, p := range round {
		if seen[p.ID] {
			return true
		}
		seen[p.ID] = true
	}

	return false
}
