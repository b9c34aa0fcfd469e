/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package kiosk

import "time"

const DefaultIdleTimeout = 60 * time.Second

// IdleMonitor tracks a single rearmable inactivity deadline.
type IdleMonitor struct {
	timeout  time.Duration
	deadline time.Time
	armed    bool
	gen      uint64
}

func NewIdleMonitor(timeout time.Duration) *IdleMonitor {
	if timeout <= 0 {
		timeout = DefaultIdleTimeout
	}

	return &IdleMonitor{timeout: timeout}
}

func (m *IdleMonitor) Timeout() time.Duration {
	return m.timeout
}

// Arm replaces any pending deadline with one timeout after now.
func (m *IdleMonitor) Arm(now time.Time) {
	m.deadline = now.Add(m.timeout)
	m.armed = true
	m.gen++
}

func (m *IdleMonitor) Disarm() {
	if !m.armed {
		return
	}

	m.armed = false
	m.gen++
}

// Deadline returns the pending deadline, if any.
func (m *IdleMonitor) Deadline() (time.Time, bool) {
	return m.deadline, m.armed
}

// Remaining is the time left until the deadline; zero when expired or unarmed.
func (m *IdleMonitor) Remaining(now time.Time) time.Duration {
	if !m.armed {
		return 0
	}

	return max(0, m.deadline.Sub(now))
}

// Fire reports whether the deadline has passed, consuming it if so.
func (m *IdleMonitor) Fire(now time.Time) bool {
	if !m.armed || now.Before(m.deadline) {
		return false
	}

	m.armed = false
	m.gen++

	return true
}

// Generation changes every time the deadline is armed, disarmed or fired.
func (m *IdleMonitor) Generation() uint64 {
	return m.gen
}
