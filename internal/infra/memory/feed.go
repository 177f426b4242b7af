package memory

import (
	"context"
	"sync"
)

// ScoreFeed is the in-process change feed: a subscriber map per quiz with
// coalescing non-blocking signals. Suitable for a single-instance
// deployment; the redis feed covers cross-instance fan-out.
type ScoreFeed struct {
	mu   sync.Mutex
	subs map[string]map[chan struct{}]struct{}
}

func NewScoreFeed() *ScoreFeed {
	return &ScoreFeed{subs: make(map[string]map[chan struct{}]struct{})}
}

// Publish signals every subscriber of the quiz. Signals coalesce: a
// subscriber with a pending signal is not queued again, since every signal
// triggers a full re-fetch anyway.
func (f *ScoreFeed) Publish(_ context.Context, quizID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs[quizID] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

// Subscribe registers a signal channel for the quiz. The cancel function is
// safe to call more than once and closes the channel.
func (f *ScoreFeed) Subscribe(_ context.Context, quizID string) (<-chan struct{}, func(), error) {
	ch := make(chan struct{}, 1)
	f.mu.Lock()
	if f.subs[quizID] == nil {
		f.subs[quizID] = make(map[chan struct{}]struct{})
	}
	f.subs[quizID][ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[quizID][ch]; ok {
			delete(f.subs[quizID], ch)
			if len(f.subs[quizID]) == 0 {
				delete(f.subs, quizID)
			}
			close(ch)
		}
	}
	return ch, cancel, nil
}
