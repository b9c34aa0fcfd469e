/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Pool is the read-only set of prompts loaded at startup.
type Pool struct {
	prompts []Prompt
	normal  []Prompt
	rare    []Prompt
	bonus   []Prompt
}

// Counts reports how many prompts of each tier a pool holds.
type Counts struct {
	Normal int `json:"normal"`
	Rare   int `json:"rare"`
	Bonus  int `json:"bonus"`
}

// NewPool indexes prompts by tier, keeping their order. Prompts with an empty
// text or an id seen earlier are dropped.
func NewPool(prompts []Prompt) *Pool {
	p := &Pool{}
	seen := make(map[string]bool, len(prompts))

	for _, prompt := range prompts {
		if prompt.Text == "" || seen[prompt.ID] {
			continue
		}
		seen[prompt.ID] = true

		p.prompts = append(p.prompts, prompt)
		p.index(prompt)
	}

	return p
}

func (p *Pool) index(prompt Prompt) {
	switch prompt.Tier {
	case Bonus:
		p.bonus = append(p.bonus, prompt)
	case Rare:
		p.rare = append(p.rare, prompt)
	default:
		p.normal = append(p.normal, prompt)
	}
}

// addBonusTexts registers bonus prompts that exist only in the bonus tier,
// each with a freshly generated id.
func (p *Pool) addBonusTexts(texts []string) {
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		p.bonus = append(p.bonus, Prompt{
			ID:   "bonus-" + uuid.NewString(),
			Text: text,
			Tier: Bonus,
		})
	}
}

// Load reads records from src and builds a pool from them. On failure the
// returned pool is still usable: it is empty apart from the bonus texts.
func Load(ctx context.Context, src Source, bonusTexts []string) (*Pool, error) {
	records, err := src.Records(ctx)
	if err != nil {
		p := NewPool(nil)
		p.addBonusTexts(bonusTexts)

		return p, &LoadError{Source: src.String(), Err: err}
	}

	prompts := make([]Prompt, 0, len(records))
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = "q-" + strconv.Itoa(i)
		}

		prompts = append(prompts, Prompt{
			ID:   id,
			Text: strings.TrimSpace(r.Question),
			Tier: r.tier(),
		})
	}

	p := NewPool(prompts)
	p.addBonusTexts(bonusTexts)

	return p, nil
}

// Len is the number of prompts in pool order. Bonus texts added by
// configuration are not counted.
func (p *Pool) Len() int {
	if p == nil {
		return 0
	}

	return len(p.prompts)
}

func (p *Pool) Prompts() []Prompt {
	if p == nil {
		return nil
	}

	return append([]Prompt(nil), p.prompts...)
}

// Head returns the first n prompts in pool order, or all of them if the pool is smaller.
func (p *Pool) Head(n int) []Prompt {
	if p == nil || n <= 0 {
		return nil
	}

	n = min(n, len(p.prompts))

	return append([]Prompt(nil), p.prompts[:n]...)
}

func (p *Pool) Normal() []Prompt {
	if p == nil {
		return nil
	}

	return append([]Prompt(nil), p.normal...)
}

func (p *Pool) Rare() []Prompt {
	if p == nil {
		return nil
	}

	return append([]Prompt(nil), p.rare...)
}

func (p *Pool) Bonus() []Prompt {
	if p == nil {
		return nil
	}

	return append([]Prompt(nil), p.bonus...)
}

func (p *Pool) Counts() Counts {
	if p == nil {
		return Counts{}
	}

	return Counts{
		Normal: len(p.normal),
		Rare:   len(p.rare),
		Bonus:  len(p.bonus),
	}
}
