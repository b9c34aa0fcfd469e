/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"math"
	"testing"
)

func TestSelectRoundLengthAndUniqueness(t *testing.T) {
	cases := []struct {
		name   string
		normal int
		rare   int
		bonus  int
	}{
		{"empty", 0, 0, 0},
		{"one", 1, 0, 0},
		{"short", 1, 1, 2},
		{"exact", 2, 1, 1},
		{"large", 20, 5, 3},
		{"rare only", 0, 7, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var all []Prompt
			all = append(all, prompts("n", tc.normal, Normal)...)
			all = append(all, prompts("r", tc.rare, Rare)...)
			all = append(all, prompts("b", tc.bonus, Bonus)...)
			pool := NewPool(all)

			s := NewSelector(seeded(1), 0.3, 0.5)
			want := min(3, tc.normal+tc.rare)

			for i := 0; i < 500; i++ {
				round := s.Select(pool, 3, false)
				if len(round) != want {
					t.Fatalf("round %d: expected %d prompts, got %d", i, want, len(round))
				}
				if hasDuplicateIDs(round) {
					t.Fatalf("round %d: duplicate ids in %v", i, round)
				}
			}
		})
	}
}

func TestSelectNormalOnlyDrawsDistinctPrompts(t *testing.T) {
	pool := NewPool(prompts("", 5, Normal))
	s := NewSelector(seeded(7), 0, 0)

	valid := make(map[string]bool)
	for _, p := range pool.Prompts() {
		valid[p.ID] = true
	}

	round := s.Select(pool, 3, false)
	if len(round) != 3 {
		t.Fatalf("expected 3 prompts, got %d", len(round))
	}
	if hasDuplicateIDs(round) {
		t.Fatalf("duplicate ids in %v", round)
	}
	for _, p := range round {
		if !valid[p.ID] {
			t.Fatalf("prompt %q is not from the pool", p.ID)
		}
	}
}

func TestSelectRareFractionConverges(t *testing.T) {
	var all []Prompt
	all = append(all, prompts("n", 50, Normal)...)
	all = append(all, prompts("r", 50, Rare)...)
	pool := NewPool(all)

	s := NewSelector(seeded(42), DefaultRareProbability, 0)

	const rounds = 20000
	rare, total := 0, 0
	for i := 0; i < rounds; i++ {
		for _, p := range s.Select(pool, 3, false) {
			total++
			if p.Tier == Rare {
				rare++
			}
		}
	}

	got := float64(rare) / float64(total)
	if math.Abs(got-DefaultRareProbability) > 0.01 {
		t.Fatalf("expected rare fraction near %.2f, got %.4f", DefaultRareProbability, got)
	}
}

func TestSelectFallsBackWhenPreferredTierEmpty(t *testing.T) {
	pool := NewPool(prompts("r", 4, Rare))
	s := NewSelector(seeded(3), 0, 0)

	round := s.Select(pool, 3, false)
	if len(round) != 3 {
		t.Fatalf("expected 3 rare prompts, got %d", len(round))
	}
	for _, p := range round {
		if p.Tier != Rare {
			t.Fatalf("expected rare prompt, got %v", p.Tier)
		}
	}
}

func TestSelectNeverDrawsBonusOrdinarily(t *testing.T) {
	var all []Prompt
	all = append(all, prompts("n", 3, Normal)...)
	all = append(all, prompts("b", 10, Bonus)...)
	pool := NewPool(all)

	s := NewSelector(seeded(5), 0.5, 0)
	for i := 0; i < 200; i++ {
		for _, p := range s.Select(pool, 3, false) {
			if p.Tier == Bonus {
				t.Fatalf("bonus prompt %q drawn without injection", p.ID)
			}
		}
	}
}

func TestSelectBonusInjection(t *testing.T) {
	var all []Prompt
	all = append(all, prompts("n", 6, Normal)...)
	all = append(all, prompts("b", 1, Bonus)...)
	pool := NewPool(all)

	s := NewSelector(seeded(11), 0, 1)
	for i := 0; i < 200; i++ {
		round := s.Select(pool, 3, false)
		bonus := 0
		for _, p := range round {
			if p.Tier == Bonus {
				bonus++
			}
		}
		if bonus != 1 {
			t.Fatalf("round %d: expected exactly one bonus prompt, got %d", i, bonus)
		}
		if hasDuplicateIDs(round) {
			t.Fatalf("round %d: duplicate ids in %v", i, round)
		}
	}
}

func TestSelectBonusSkippedWhenAlreadyPresent(t *testing.T) {
	all := []Prompt{
		{ID: "b0", Text: "bonus", Tier: Bonus},
		{ID: "n0", Text: "zero", Tier: Normal},
		{ID: "n1", Text: "one", Tier: Normal},
	}
	pool := NewPool(all)

	s := NewSelector(seeded(13), 0, 1)
	for i := 0; i < 100; i++ {
		round := s.Select(pool, 3, true)
		if hasDuplicateIDs(round) {
			t.Fatalf("round %d: duplicate ids in %v", i, round)
		}
		for j, p := range round {
			if p.ID != all[j].ID {
				t.Fatalf("round %d: expected opening round unchanged, got %v", i, round)
			}
		}
	}
}

func TestSelectFromStartUsesPoolOrder(t *testing.T) {
	pool := NewPool(prompts("", 6, Normal))
	s := NewSelector(seeded(17), 0.5, 0)

	round := s.Select(pool, 3, true)
	for i, p := range round {
		if want := pool.Prompts()[i].ID; p.ID != want {
			t.Fatalf("slot %d: expected %q, got %q", i, want, p.ID)
		}
	}
}

func TestSelectFromStartIgnoredOnShortPool(t *testing.T) {
	pool := NewPool(prompts("", 2, Normal))
	s := NewSelector(seeded(19), 0, 0)

	round := s.Select(pool, 3, true)
	if len(round) != 2 {
		t.Fatalf("expected shortfall round of 2, got %d", len(round))
	}
}

func TestSelectZeroGroupSize(t *testing.T) {
	pool := NewPool(prompts("", 4, Normal))
	s := NewSelector(seeded(23), 0, 1)

	if round := s.Select(pool, 0, false); len(round) != 0 {
		t.Fatalf("expected empty round, got %v", round)
	}
}
