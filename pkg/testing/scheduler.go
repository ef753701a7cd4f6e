package testing

import (
	"sort"
	"sync"
	"time"

	"github.com/go-drift/studio/pkg/overlay"
)

// Epoch is where every FakeScheduler's time starts.
var Epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// FakeScheduler is an [overlay.Scheduler] with its own manual time.
// Callbacks run only from Advance, on the caller's goroutine. Now can stand
// in for any Now func, such as preset.Manager.Now.
type FakeScheduler struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
	seq    int
}

// NewFakeScheduler returns a scheduler whose time starts at Epoch.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{now: Epoch}
}

// Now returns the scheduler's current time.
func (s *FakeScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// AfterFunc registers f to run once time has advanced by d.
func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) overlay.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &fakeTimer{sched: s, due: s.now.Add(d), f: f, seq: s.seq}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves time forward by d and runs every callback that became due,
// earliest first. It returns the number of callbacks run.
func (s *FakeScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	s.now = s.now.Add(d)
	now := s.now
	var due, rest []*fakeTimer
	for _, t := range s.timers {
		if !t.due.After(now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	s.timers = rest
	s.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, t := range due {
		t.f()
	}
	return len(due)
}

// Pending returns the number of callbacks waiting to run.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

type fakeTimer struct {
	sched *FakeScheduler
	due   time.Time
	f     func()
	seq   int
}

func (t *fakeTimer) Stop() bool {
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, other := range s.timers {
		if other == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}
