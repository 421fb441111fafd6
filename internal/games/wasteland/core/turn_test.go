package core

import (
	"slices"
	"testing"
)

func TestTurnSchedulerOrder(t *testing.T) {
	ts := NewTurnScheduler(1)
	var calls []string
	ts.Subscribe(func(int) { calls = append(calls, "a") })
	ts.Subscribe(func(int) { calls = append(calls, "b") })
	ts.Subscribe(func(turn int) {
		if turn != 2 {
			t.Errorf("observer saw turn %d, expected 2", turn)
		}
		calls = append(calls, "c")
	})

	ts.Tick()

	if ts.TurnCount() != 2 {
		t.Errorf("TurnCount() = %d, expected 2", ts.TurnCount())
	}
	if !slices.Equal(calls, []string{"a", "b", "c"}) {
		t.Errorf("calls = %v, expected [a b c]", calls)
	}
}

func TestTurnSchedulerUnsubscribeDuringTick(t *testing.T) {
	ts := NewTurnScheduler(0)
	var calls []string
	var second *Subscription

	ts.Subscribe(func(int) {
		calls = append(calls, "first")
		ts.Unsubscribe(second)
	})
	second = ts.Subscribe(func(int) { calls = append(calls, "second") })
	ts.Subscribe(func(int) { calls = append(calls, "third") })

	ts.Tick()
	if !slices.Equal(calls, []string{"first", "third"}) {
		t.Errorf("calls = %v, expected [first third]", calls)
	}
	if ts.Subscribers() != 2 {
		t.Errorf("Subscribers() = %d, expected 2", ts.Subscribers())
	}

	calls = nil
	ts.Tick()
	if !slices.Equal(calls, []string{"first", "third"}) {
		t.Errorf("second tick calls = %v", calls)
	}
}

func TestTurnSchedulerSubscribeDuringTick(t *testing.T) {
	ts := NewTurnScheduler(0)
	late := 0
	ts.Subscribe(func(turn int) {
		if turn == 1 {
			ts.Subscribe(func(int) { late++ })
		}
	})

	ts.Tick()
	if late != 0 {
		t.Errorf("observer added mid-tick ran %d times, expected 0", late)
	}
	ts.Tick()
	if late != 1 {
		t.Errorf("observer added mid-tick ran %d times on next tick, expected 1", late)
	}
}

func TestTurnSchedulerSelfUnsubscribe(t *testing.T) {
	ts := NewTurnScheduler(0)
	n := 0
	var sub *Subscription
	sub = ts.Subscribe(func(int) {
		n++
		ts.Unsubscribe(sub)
	})

	ts.Tick()
	ts.Tick()
	ts.Unsubscribe(sub)

	if n != 1 {
		t.Errorf("self-removing observer ran %d times, expected 1", n)
	}
	if ts.TurnCount() != 2 {
		t.Errorf("TurnCount() = %d, expected 2", ts.TurnCount())
	}
}
