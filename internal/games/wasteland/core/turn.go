package core

// Subscription is a handle to one registered turn observer.
type Subscription struct {
	fn   func(turn int)
	dead bool
}

// TurnScheduler counts turns and notifies observers once per turn.
type TurnScheduler struct {
	turn    int
	subs    []*Subscription
	ticking bool
}

// NewTurnScheduler creates a scheduler whose counter starts at start.
func NewTurnScheduler(start int) *TurnScheduler {
	return &TurnScheduler{turn: start}
}

// TurnCount returns the current turn.
func (t *TurnScheduler) TurnCount() int {
	return t.turn
}

// Subscribe registers fn to run on every tick, after the observers already
// registered. A subscription made during a tick first fires on the next one.
func (t *TurnScheduler) Subscribe(fn func(turn int)) *Subscription {
	s := &Subscription{fn: fn}
	t.subs = append(t.subs, s)
	return s
}

// Unsubscribe stops s from being notified. It is safe to call from inside
// a tick, including for observers that have not run yet.
func (t *TurnScheduler) Unsubscribe(s *Subscription) {
	if s == nil || s.dead {
		return
	}
	s.dead = true
	if !t.ticking {
		t.compact()
	}
}

// Subscribers returns the number of live observers.
func (t *TurnScheduler) Subscribers() int {
	n := 0
	for _, s := range t.subs {
		if !s.dead {
			n++
		}
	}
	return n
}

// Tick advances the turn and notifies every observer in order.
// All reactions complete before Tick returns.
func (t *TurnScheduler) Tick() {
	t.turn++

	snapshot := t.subs[:len(t.subs):len(t.subs)]
	t.ticking = true
	for _, s := range snapshot {
		if s.dead {
			continue
		}
		s.fn(t.turn)
	}
	t.ticking = false
	t.compact()
}

func (t *TurnScheduler) compact() {
	live := t.subs[:0]
	for _, s := range t.subs {
		if !s.dead {
			live = append(live, s)
		}
	}
	clear(t.subs[len(live):])
	t.subs = live
}
