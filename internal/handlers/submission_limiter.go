package handlers

import (
	"strings"
	"sync"
	"time"
)

// submissionLimiter throttles guest RSVP and wish submissions per
// client address so a single guest cannot flood a public site.
type submissionLimiter interface {
	Allow(guestKey string) bool
}

type guestSubmissionLimiter struct {
	perWindow int
	window    time.Duration
	clock     func() time.Time
	mu        sync.Mutex
	guests    map[string]submissionWindow
}

type submissionWindow struct {
	submissions int
	resetsAt    time.Time
}

func newGuestSubmissionLimiter(perWindow int, window time.Duration, clock func() time.Time) submissionLimiter {
	if perWindow <= 0 || window <= 0 {
		return nil
	}
	if clock == nil {
		clock = time.Now
	}
	return &guestSubmissionLimiter{
		perWindow: perWindow,
		window:    window,
		clock:     clock,
		guests:    make(map[string]submissionWindow),
	}
}

func (l *guestSubmissionLimiter) Allow(guestKey string) bool {
	if l == nil {
		return true
	}
	guestKey = strings.TrimSpace(guestKey)
	if guestKey == "" {
		guestKey = "anonymous"
	}
	now := l.clock()
	l.mu.Lock()
	defer l.mu.Unlock()

	win, ok := l.guests[guestKey]
	if !ok || now.After(win.resetsAt) {
		l.guests[guestKey] = submissionWindow{submissions: 1, resetsAt: now.Add(l.window)}
		l.dropStaleLocked(now)
		return true
	}

	if win.submissions >= l.perWindow {
		return false
	}
	win.submissions++
	l.guests[guestKey] = win
	return true
}

func (l *guestSubmissionLimiter) dropStaleLocked(now time.Time) {
	if len(l.guests) == 0 {
		return
	}
	for key, win := range l.guests {
		if now.After(win.resetsAt) {
			delete(l.guests, key)
		}
	}
}
