/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

// Tier controls how often a prompt is drawn and how it is displayed.
type Tier int

const (
	Normal Tier = iota
	Rare
	Bonus
)

func (t Tier) String() string {
	switch t {
	case Rare:
		return "rare"
	case Bonus:
		return "bonus"
	default:
		return "normal"
	}
}

// Prompt is a single question shown on the kiosk.
type Prompt struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Tier Tier   `json:"tier"`
}

// Record is a prompt as it appears in a question source.
type Record struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Rare     bool   `json:"rare,omitempty" yaml:"rare,omitempty"`
	IsBonus  bool   `json:"isBonus,omitempty" yaml:"isBonus,omitempty"`
}

func (r Record) tier() Tier {
	switch {
	case r.IsBonus:
		return Bonus
	case r.Rare:
		return Rare
	default:
		return Normal
	}
}

// document is the top-level shape of a question source.
type document struct {
	Questions []Record `json:"questions" yaml:"questions"`
}
