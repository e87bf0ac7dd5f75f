package service

import (
	"sync"
	"time"

	"github.com/awnumar/memguard"

	"github.com/MKhiriev/notevault/internal/clock"
)

// Eraser owns the single scheduled erase callback of a vault. Starting it
// again replaces the pending callback.
type Eraser struct {
	clock clock.Clock

	mu    sync.Mutex
	timer clock.Timer
}

func NewEraser(clk clock.Clock) *Eraser {
	return &Eraser{clock: clk}
}

// Start schedules f after d, cancelling any pending callback.
func (e *Eraser) Start(d time.Duration, f func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = e.clock.AfterFunc(d, f)
}

// Cancel drops the pending callback, if any.
func (e *Eraser) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

// UnlockSession keeps the vault password sealed in a memguard enclave for at
// most window after the last Set or Extend. When the window passes the
// password is destroyed and onExpire runs.
type UnlockSession struct {
	clock  clock.Clock
	eraser *Eraser
	window time.Duration

	mu        sync.Mutex
	enclave   *memguard.Enclave
	expiresAt time.Time
	// gen changes on every Set, Extend and Clear. A callback scheduled for
	// an older generation does nothing.
	gen uint64

	onExpire func()
}

func NewUnlockSession(clk clock.Clock, window time.Duration, onExpire func()) *UnlockSession {
	return &UnlockSession{
		clock:    clk,
		eraser:   NewEraser(clk),
		window:   window,
		onExpire: onExpire,
	}
}

// Set caches password and restarts the erase window. An empty password
// clears the session.
func (s *UnlockSession) Set(password string) {
	if password == "" {
		s.Clear()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// NewEnclave wipes the slice it is given.
	s.enclave = memguard.NewEnclave([]byte(password))
	s.restart()
}

// Extend rolls the erase window over. It does nothing on a cleared session.
func (s *UnlockSession) Extend() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enclave == nil {
		return
	}
	s.restart()
}

// restart moves the expiry and reschedules the erase under a new generation.
// s.mu must be held.
func (s *UnlockSession) restart() {
	s.gen++
	gen := s.gen
	s.expiresAt = s.clock.Now().Add(s.window)
	s.eraser.Start(s.window, func() { s.expire(gen) })
}

// Password returns the cached password, or false when the session is
// cleared or past its expiry.
func (s *UnlockSession) Password() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enclave == nil || !s.clock.Now().Before(s.expiresAt) {
		return "", false
	}

	buf, err := s.enclave.Open()
	if err != nil {
		return "", false
	}
	defer buf.Destroy()

	return string(buf.Bytes()), true
}

// ExpiresAt reports when the cached password will be erased.
func (s *UnlockSession) ExpiresAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enclave == nil {
		return time.Time{}, false
	}
	return s.expiresAt, true
}

// Clear drops the password and the pending erase. It reports whether a
// password was held.
func (s *UnlockSession) Clear() bool {
	s.eraser.Cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	held := s.enclave != nil
	s.gen++
	s.enclave = nil
	s.expiresAt = time.Time{}
	return held
}

func (s *UnlockSession) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	held := s.enclave != nil
	s.enclave = nil
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	if held && s.onExpire != nil {
		s.onExpire()
	}
}
