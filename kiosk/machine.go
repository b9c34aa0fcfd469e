/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"math/rand/v2"
	"time"
)

// Options tune a Machine. Zero values fall back to the defaults.
type Options struct {
	GroupSize       int
	IdleTimeout     time.Duration
	RareProbability float64
	BonusChance     float64
	MinSpeed        float64
	MaxSpeed        float64

	Rand  *rand.Rand
	Clock func() time.Time
	Logf  func(format string, args ...any)
}

// DefaultOptions returns the stock kiosk tuning.
func DefaultOptions() Options {
	return Options{
		GroupSize:       DefaultGroupSize,
		IdleTimeout:     DefaultIdleTimeout,
		RareProbability: DefaultRareProbability,
		BonusChance:     DefaultBonusChance,
		MinSpeed:        DefaultMinSpeed,
		MaxSpeed:        DefaultMaxSpeed,
	}
}

// Machine is the kiosk session: display mode, the current round, the idle
// deadline and the screensaver motion. It is not safe for concurrent use;
// Loop serializes access to it.
type Machine struct {
	view     View
	pool     *Pool
	selector *Selector
	idle     *IdleMonitor
	rng      *rand.Rand
	now      func() time.Time
	logf     func(format string, args ...any)

	groupSize          int
	minSpeed, maxSpeed float64

	ready        bool
	busy         bool
	mode         Mode
	interrupted  Mode
	resetToStart bool

	round  []Prompt
	cursor int

	viewport  Size
	motion    MotionState
	lastFrame time.Time
}

func NewMachine(view View, opts Options) *Machine {
	def := DefaultOptions()
	if opts.GroupSize <= 0 {
		opts.GroupSize = def.GroupSize
	}
	if opts.MinSpeed <= 0 {
		opts.MinSpeed = def.MinSpeed
	}
	if opts.MaxSpeed < opts.MinSpeed {
		opts.MaxSpeed = max(def.MaxSpeed, opts.MinSpeed)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}

	return &Machine{
		view:      view,
		selector:  NewSelector(opts.Rand, opts.RareProbability, opts.BonusChance),
		idle:      NewIdleMonitor(opts.IdleTimeout),
		rng:       opts.Rand,
		now:       opts.Clock,
		logf:      opts.Logf,
		groupSize: opts.GroupSize,
		minSpeed:  opts.MinSpeed,
		maxSpeed:  opts.MaxSpeed,
		mode:      Logo,
	}
}

// SetPool finishes startup: transitions are inert until it is called.
func (m *Machine) SetPool(pool *Pool) {
	if pool == nil {
		pool = NewPool(nil)
	}

	m.pool = pool
	m.ready = true

	m.logf("KIOSK: Pool ready (%d normal, %d rare, %d bonus)",
		len(pool.normal), len(pool.rare), len(pool.bonus))

	m.render()
	m.idle.Arm(m.now())
}

func (m *Machine) Ready() bool {
	return m.ready
}

func (m *Machine) Mode() Mode {
	return m.mode
}

// Cursor is the index of the prompt on screen while in Questions.
func (m *Machine) Cursor() int {
	return m.cursor
}

func (m *Machine) Round() []Prompt {
	return append([]Prompt(nil), m.round...)
}

// ResetToStart reports whether the next activation uses the opening round.
func (m *Machine) ResetToStart() bool {
	return m.resetToStart
}

func (m *Machine) Pool() *Pool {
	return m.pool
}

func (m *Machine) Idle() *IdleMonitor {
	return m.idle
}

func (m *Machine) Motion() MotionState {
	return m.motion
}

// Animating reports whether the screensaver needs frame updates.
func (m *Machine) Animating() bool {
	return m.mode == Screensaver
}

// Handle processes one input event.
func (m *Machine) Handle(ev Event) {
	if ev.Kind == Resize {
		m.resize(ev.Viewport)

		return
	}

	if !m.ready || !ev.activity() {
		return
	}

	if m.mode == Screensaver {
		m.exitScreensaver()

		return
	}

	m.idle.Arm(m.now())

	switch ev.Kind {
	case KeyDown:
		switch {
		case m.mode == Questions:
			m.Advance()
		case m.mode == Logo && ev.Key == KeyEnter:
			m.Activate()
		}
	case PointerDown:
		switch {
		case m.mode == Questions && ev.Target == AreaQuestions:
			m.Advance()
		case m.mode == Logo && ev.Target == AreaLogo:
			m.Activate()
		}
	}
}

// begin claims the transition guard; callers must call end when done.
func (m *Machine) begin() bool {
	if m.busy || !m.ready {
		return false
	}
	m.busy = true

	return true
}

func (m *Machine) end() {
	m.busy = false
}

// Activate moves from Logo to a fresh round of questions.
func (m *Machine) Activate() {
	if m.mode != Logo || !m.begin() {
		return
	}
	defer m.end()

	fromStart := m.resetToStart
	round := m.selector.Select(m.pool, m.groupSize, fromStart)
	if fromStart && m.pool.Len() >= m.groupSize {
		m.resetToStart = false
	}

	if len(round) == 0 {
		m.logf("KIOSK: No prompts available, staying on logo")
		m.idle.Arm(m.now())

		return
	}
	if len(round) < m.groupSize {
		m.logf("KIOSK: Round shortfall (%d of %d prompts)", len(round), m.groupSize)
	}

	m.round = round
	m.cursor = 0
	m.mode = Questions

	m.logf("KIOSK: Started round of %d prompts", len(round))

	m.render()
	m.idle.Arm(m.now())
}

// Advance shows the next prompt, or returns to the logo after the last one.
func (m *Machine) Advance() {
	if m.mode != Questions || !m.begin() {
		return
	}
	defer m.end()

	if m.cursor < len(m.round)-1 {
		m.cursor++
	} else {
		m.round = nil
		m.cursor = 0
		m.mode = Logo

		m.logf("KIOSK: Round complete")
	}

	m.render()
	m.idle.Arm(m.now())
}

// IdleExpired enters the screensaver if the idle deadline has passed.
func (m *Machine) IdleExpired() {
	if m.mode == Screensaver || m.busy || !m.idle.Fire(m.now()) {
		return
	}
	if !m.begin() {
		return
	}
	defer m.end()

	m.interrupted = m.mode
	m.mode = Screensaver

	m.motion = StartMotion(m.bounds(), m.minSpeed, m.maxSpeed, m.rng)
	m.lastFrame = m.now()

	m.logf("KIOSK: Screensaver started from %s", m.interrupted)

	m.render()
}

func (m *Machine) exitScreensaver() {
	if !m.begin() {
		return
	}
	defer m.end()

	m.motion = MotionState{}
	m.lastFrame = time.Time{}

	switch m.interrupted {
	case Questions:
		m.round = m.pool.Head(m.groupSize)
		m.cursor = 0
		m.mode = Questions
		m.resetToStart = false
		if len(m.round) == 0 {
			m.mode = Logo
		}
	default:
		m.round = nil
		m.cursor = 0
		m.mode = Logo
		m.resetToStart = true
	}

	m.logf("KIOSK: Screensaver dismissed, back to %s", m.mode)

	m.render()
	m.idle.Arm(m.now())
}

// Frame advances the screensaver to now and redraws it.
func (m *Machine) Frame(now time.Time) {
	if m.mode != Screensaver {
		return
	}

	dt := now.Sub(m.lastFrame).Seconds()
	m.lastFrame = now

	m.Step(dt)
}

// Step advances the screensaver by dt seconds.
func (m *Machine) Step(dt float64) {
	if m.mode != Screensaver {
		return
	}

	var hit Bounce
	m.motion, hit = Advance(m.motion, dt, m.bounds(), m.rng)
	if hit.Corner() {
		m.logf("KIOSK: Corner hit, hue %.0f", m.motion.Hue)
	}

	m.render()
}

func (m *Machine) resize(viewport Size) {
	m.viewport = viewport

	if m.mode != Screensaver {
		return
	}

	m.motion = Reclamp(m.motion, m.bounds())
	m.render()
}

func (m *Machine) bounds() Bounds {
	b := Bounds{Viewport: m.viewport}
	if m.view != nil {
		b.Glyph = m.view.GlyphSize()
	}

	return b
}

// Snapshot builds the frame for the current state.
func (m *Machine) Snapshot() Frame {
	f := Frame{Mode: m.mode}

	switch m.mode {
	case Questions:
		if m.cursor < len(m.round) {
			p := m.round[m.cursor]
			f.Text = p.Text
			f.Bonus = p.Tier == Bonus
		}
		f.Cursor = m.cursor
		f.Total = len(m.round)
	case Screensaver:
		f.X = m.motion.X
		f.Y = m.motion.Y
		f.Hue = m.motion.Hue
		f.HasHue = m.motion.HasHue
	}

	return f
}

func (m *Machine) render() {
	if m.view == nil {
		return
	}

	m.view.Render(m.Snapshot())
}
