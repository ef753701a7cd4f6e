package testing

import (
	"testing"
	"time"
)

func TestFakeScheduler_Now(t *testing.T) {
	sched := NewFakeScheduler()
	if !sched.Now().Equal(Epoch) {
		t.Errorf("Now = %v, want %v", sched.Now(), Epoch)
	}
	sched.Advance(100 * time.Millisecond)
	if elapsed := sched.Now().Sub(Epoch); elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeScheduler_RunsDueCallbacksInOrder(t *testing.T) {
	sched := NewFakeScheduler()
	var order []string
	sched.AfterFunc(200*time.Millisecond, func() { order = append(order, "late") })
	sched.AfterFunc(100*time.Millisecond, func() { order = append(order, "early") })
	sched.AfterFunc(100*time.Millisecond, func() { order = append(order, "early2") })

	if n := sched.Advance(50 * time.Millisecond); n != 0 {
		t.Errorf("expected nothing due at 50ms, ran %d", n)
	}
	if n := sched.Advance(200 * time.Millisecond); n != 3 {
		t.Errorf("expected 3 callbacks, ran %d", n)
	}
	want := []string{"early", "early2", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
	if sched.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", sched.Pending())
	}
}

func TestFakeScheduler_Stop(t *testing.T) {
	sched := NewFakeScheduler()
	ran := false
	timer := sched.AfterFunc(time.Second, func() { ran = true })

	if !timer.Stop() {
		t.Error("first Stop should report true")
	}
	if timer.Stop() {
		t.Error("second Stop should report false")
	}
	sched.Advance(2 * time.Second)
	if ran {
		t.Error("stopped callback ran")
	}
}

func TestFakeScheduler_CallbackCanReschedule(t *testing.T) {
	sched := NewFakeScheduler()
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			sched.AfterFunc(10*time.Millisecond, tick)
		}
	}
	sched.AfterFunc(10*time.Millisecond, tick)
	for i := 0; i < 5; i++ {
		sched.Advance(10 * time.Millisecond)
	}
	if count != 3 {
		t.Errorf("expected 3 ticks, got %d", count)
	}
}
