package app

import (
	"context"
	"log"
	"sync"

	"speed-trivia-service/internal/domain"
)

// SubmitState is the explicit one-shot latch for result uploads. The state
// machine makes at-most-once delivery and the single retry provable instead
// of a side effect of render timing.
type SubmitState int

const (
	SubmitNotSubmitted SubmitState = iota
	SubmitSubmitting
	SubmitSubmitted
	SubmitFailed
)

// maxSubmitAttempts bounds retries: a failed upload permits exactly one
// further attempt, never unbounded ones.
const maxSubmitAttempts = 2

// Submitter uploads one completed session's result. Persistence is
// best-effort: failures are logged and swallowed, and sessions without a
// quiz identifier are never persisted.
type Submitter struct {
	store ScoreStore
	feed  ScoreFeed

	mu       sync.Mutex
	state    SubmitState
	attempts int
}

func NewSubmitter(store ScoreStore, feed ScoreFeed) *Submitter {
	return &Submitter{store: store, feed: feed}
}

// State returns the latch position.
func (s *Submitter) State() SubmitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit uploads the result unless an upload is in flight, already done, or
// the retry budget is spent. The latch moves to Submitting before the store
// call begins, so re-entrant callers can never double-send.
func (s *Submitter) Submit(ctx context.Context, result domain.GameResult) {
	if result.QuizID == "" {
		return
	}

	s.mu.Lock()
	if s.state == SubmitSubmitting || s.state == SubmitSubmitted || s.attempts >= maxSubmitAttempts {
		s.mu.Unlock()
		return
	}
	s.state = SubmitSubmitting
	s.attempts++
	s.mu.Unlock()

	err := s.store.InsertScore(ctx, domain.Score{
		QuizID:         result.QuizID,
		PlayerName:     result.PlayerName,
		Score:          result.Score,
		TotalQuestions: result.TotalQuestions,
		Time:           result.Time,
		Language:       string(result.Language),
		CreatedAt:      result.Timestamp,
	})

	s.mu.Lock()
	if err != nil {
		s.state = SubmitFailed
		s.mu.Unlock()
		log.Printf("uploading score for quiz %s: %v", result.QuizID, err)
		return
	}
	s.state = SubmitSubmitted
	s.mu.Unlock()

	if s.feed != nil {
		if err := s.feed.Publish(ctx, result.QuizID); err != nil {
			log.Printf("publishing score change for quiz %s: %v", result.QuizID, err)
		}
	}
}
