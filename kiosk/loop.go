/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import (
	"context"
	"time"
)

const DefaultFPS = 60

// Loop owns a Machine and feeds it events, idle deadlines and animation
// frames from a single goroutine.
type Loop struct {
	machine *Machine
	events  chan Event
	fps     int
	logf    func(format string, args ...any)
	onLoad  func(*Pool, error)
}

func NewLoop(machine *Machine, fps int, logf func(format string, args ...any)) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	return &Loop{
		machine: machine,
		events:  make(chan Event, 64),
		fps:     fps,
		logf:    logf,
	}
}

// OnLoad registers fn to be called on the loop goroutine once the pool load
// settles. It must be called before Run.
func (l *Loop) OnLoad(fn func(*Pool, error)) {
	l.onLoad = fn
}

// Send queues an event, blocking until the loop accepts it or ctx ends.
func (l *Loop) Send(ctx context.Context, ev Event) error {
	select {
	case l.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type loadResult struct {
	pool *Pool
	err  error
}

// Run loads the pool from src and processes events until ctx is done.
func (l *Loop) Run(ctx context.Context, src Source, bonusTexts []string) error {
	loaded := make(chan loadResult, 1)
	go func() {
		pool, err := Load(ctx, src, bonusTexts)
		loaded <- loadResult{pool: pool, err: err}
	}()

	idle := time.NewTimer(time.Hour)
	stopTimer(idle)
	defer idle.Stop()

	var (
		idleGen uint64
		ticker  *time.Ticker
		frames  <-chan time.Time
	)

	stopFrames := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			frames = nil
		}
	}
	defer stopFrames()

	for {
		select {
		case <-ctx.Done():
			return nil

		case res := <-loaded:
			loaded = nil
			if res.err != nil {
				l.logf("LOAD: %v", res.err)
			} else {
				l.logf("LOAD: %d prompts from %s", res.pool.Len(), src)
			}
			l.machine.SetPool(res.pool)
			if l.onLoad != nil {
				l.onLoad(res.pool, res.err)
			}

		case ev := <-l.events:
			l.machine.Handle(ev)

		case <-idle.C:
			l.machine.IdleExpired()

		case now := <-frames:
			l.machine.Frame(now)
		}

		if gen := l.machine.Idle().Generation(); gen != idleGen {
			idleGen = gen
			stopTimer(idle)
			if _, armed := l.machine.Idle().Deadline(); armed {
				idle.Reset(l.machine.Idle().Remaining(l.machine.now()))
			}
		}

		switch animating := l.machine.Animating(); {
		case animating && ticker == nil:
			ticker = time.NewTicker(time.Second / time.Duration(l.fps))
			frames = ticker.C
		case !animating && ticker != nil:
			stopFrames()
		}
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
