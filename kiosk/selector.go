/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"math/rand/v2"
)

const (
	DefaultGroupSize       = 3
	DefaultRareProbability = 0.12
	DefaultBonusChance     = 0.10
)

// Selector draws rounds of prompts from a pool.
type Selector struct {
	rng             *rand.Rand
	rareProbability float64
	bonusChance     float64
}

func NewSelector(rng *rand.Rand, rareProbability, bonusChance float64) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Selector{
		rng:             rng,
		rareProbability: rareProbability,
		bonusChance:     bonusChance,
	}
}

// Select returns up to groupSize distinct prompts. When fromStart is set and
// the pool is large enough, the first groupSize prompts in pool order are used
// instead of a random draw. Either way a bonus prompt may replace one slot.
func (s *Selector) Select(pool *Pool, groupSize int, fromStart bool) []Prompt {
	if groupSize <= 0 {
		return nil
	}

	var round []Prompt
	if fromStart && pool.Len() >= groupSize {
		round = pool.Head(groupSize)
	} else {
		round = s.draw(pool, groupSize)
	}

	s.injectBonus(pool, round)

	return round
}

func (s *Selector) draw(pool *Pool, groupSize int) []Prompt {
	normal := pool.Normal()
	rare := pool.Rare()

	round := make([]Prompt, 0, groupSize)
	chosen := make(map[string]bool, groupSize)

	for len(round) < groupSize && (len(normal) > 0 || len(rare) > 0) {
		from := &normal
		if s.rng.Float64() < s.rareProbability {
			from = &rare
		}
		if len(*from) == 0 {
			if from == &normal {
				from = &rare
			} else {
				from = &normal
			}
		}

		prompt := s.take(from)
		if chosen[prompt.ID] {
			continue
		}
		chosen[prompt.ID] = true
		round = append(round, prompt)
	}

	// Best-effort fill from whatever both tiers still hold. The draw above
	// only stops early once both tiers are empty, so this does not run today.
	leftover := append(normal, rare...)
	for len(round) < groupSize && len(leftover) > 0 {
		prompt := s.take(&leftover)
		if chosen[prompt.ID] {
			continue
		}
		chosen[prompt.ID] = true
		round = append(round, prompt)
	}

	return round
}

// take removes and returns a uniformly chosen prompt from list.
func (s *Selector) take(list *[]Prompt) Prompt {
	l := *list
	i := s.rng.IntN(len(l))
	prompt := l[i]

	l[i] = l[len(l)-1]
	*list = l[:len(l)-1]

	return prompt
}

func (s *Selector) injectBonus(pool *Pool, round []Prompt) {
	if len(round) == 0 || s.rng.Float64() >= s.bonusChance {
		return
	}

	present := make(map[string]bool, len(round))
	for _, p := range round {
		present[p.ID] = true
	}

	var eligible []Prompt
	for _, p := range pool.Bonus() {
		if !present[p.ID] {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return
	}

	round[s.rng.IntN(len(round))] = eligible[s.rng.IntN(len(eligible))]
}
