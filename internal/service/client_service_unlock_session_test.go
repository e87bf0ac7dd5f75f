package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/clock"
)

// latchClock remembers every scheduled callback so a test can run one after
// its timer was replaced, the way a real timer that already fired would.
type latchClock struct {
	*clock.Manual
	scheduled []func()
}

func (c *latchClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.scheduled = append(c.scheduled, f)
	return c.Manual.AfterFunc(d, f)
}

// ── Eraser ──

func TestEraser_RestartReplacesPendingCallback(t *testing.T) {
	clk := newTestClock()
	e := NewEraser(clk)

	var fired []string
	e.Start(time.Minute, func() { fired = append(fired, "first") })
	e.Start(time.Minute, func() { fired = append(fired, "second") })
	assert.Equal(t, 1, clk.Pending())

	clk.Advance(time.Minute)
	assert.Equal(t, []string{"second"}, fired)
}

func TestEraser_Cancel(t *testing.T) {
	clk := newTestClock()
	e := NewEraser(clk)

	called := false
	e.Start(time.Minute, func() { called = true })
	e.Cancel()
	e.Cancel()

	clk.Advance(time.Hour)
	assert.False(t, called)
	assert.Zero(t, clk.Pending())
}

// ── UnlockSession ──

func TestUnlockSession_PasswordWithinWindow(t *testing.T) {
	clk := newTestClock()
	s := NewUnlockSession(clk, 30*time.Minute, nil)

	_, ok := s.Password()
	assert.False(t, ok)

	s.Set("abc123")
	password, ok := s.Password()
	require.True(t, ok)
	assert.Equal(t, "abc123", password)

	expiresAt, ok := s.ExpiresAt()
	require.True(t, ok)
	assert.Equal(t, testStart.Add(30*time.Minute), expiresAt)

	// readable more than once
	password, ok = s.Password()
	require.True(t, ok)
	assert.Equal(t, "abc123", password)
}

func TestUnlockSession_ExpiresAfterWindow(t *testing.T) {
	clk := newTestClock()
	expired := 0
	s := NewUnlockSession(clk, 30*time.Minute, func() { expired++ })

	s.Set("abc123")
	clk.Advance(29 * time.Minute)
	_, ok := s.Password()
	assert.True(t, ok)
	assert.Zero(t, expired)

	clk.Advance(time.Minute)
	_, ok = s.Password()
	assert.False(t, ok)
	assert.Equal(t, 1, expired)

	_, ok = s.ExpiresAt()
	assert.False(t, ok)
}

func TestUnlockSession_ExtendRollsWindow(t *testing.T) {
	clk := newTestClock()
	expired := 0
	s := NewUnlockSession(clk, 30*time.Minute, func() { expired++ })

	s.Set("abc123")
	clk.Advance(20 * time.Minute)
	s.Extend()
	clk.Advance(20 * time.Minute)

	_, ok := s.Password()
	assert.True(t, ok)
	assert.Zero(t, expired)
	assert.Equal(t, 1, clk.Pending())

	clk.Advance(10 * time.Minute)
	_, ok = s.Password()
	assert.False(t, ok)
	assert.Equal(t, 1, expired)
}

func TestUnlockSession_ExtendOnClearedSessionDoesNothing(t *testing.T) {
	clk := newTestClock()
	s := NewUnlockSession(clk, time.Minute, func() { t.Fatal("nothing to expire") })

	s.Extend()
	assert.Zero(t, clk.Pending())
	_, ok := s.Password()
	assert.False(t, ok)
}

func TestUnlockSession_Clear(t *testing.T) {
	clk := newTestClock()
	expired := 0
	s := NewUnlockSession(clk, time.Minute, func() { expired++ })

	s.Set("abc123")
	assert.True(t, s.Clear())
	assert.False(t, s.Clear())
	assert.Zero(t, clk.Pending())

	clk.Advance(time.Hour)
	assert.Zero(t, expired)
	_, ok := s.Password()
	assert.False(t, ok)
}

func TestUnlockSession_RepeatedSetKeepsOneTimer(t *testing.T) {
	clk := newTestClock()
	s := NewUnlockSession(clk, time.Minute, nil)

	s.Set("a")
	s.Set("b")
	s.Set("c")
	assert.Equal(t, 1, clk.Pending())

	password, ok := s.Password()
	require.True(t, ok)
	assert.Equal(t, "c", password)
}

func TestUnlockSession_EmptyPasswordClears(t *testing.T) {
	clk := newTestClock()
	s := NewUnlockSession(clk, time.Minute, nil)

	s.Set("abc123")
	s.Set("")
	_, ok := s.Password()
	assert.False(t, ok)
	assert.Zero(t, clk.Pending())
}

func TestUnlockSession_StaleEraseKeepsNewPassword(t *testing.T) {
	clk := &latchClock{Manual: newTestClock()}
	expired := 0
	s := NewUnlockSession(clk, time.Minute, func() { expired++ })

	s.Set("old")
	require.Len(t, clk.scheduled, 1)
	stale := clk.scheduled[0]

	s.Set("new")
	stale()

	password, ok := s.Password()
	require.True(t, ok)
	assert.Equal(t, "new", password)
	assert.Zero(t, expired)

	s.Extend()
	clk.scheduled[1]()
	_, ok = s.Password()
	assert.True(t, ok)
	assert.Zero(t, expired)

	clk.Advance(time.Minute)
	_, ok = s.Password()
	assert.False(t, ok)
	assert.Equal(t, 1, expired)
}

func TestUnlockSession_EraseAfterClearDoesNothing(t *testing.T) {
	clk := &latchClock{Manual: newTestClock()}
	s := NewUnlockSession(clk, time.Minute, func() { t.Fatal("cleared session expired") })

	s.Set("abc123")
	s.Clear()
	clk.scheduled[0]()
	s.Set("def456")

	password, ok := s.Password()
	require.True(t, ok)
	assert.Equal(t, "def456", password)
}
