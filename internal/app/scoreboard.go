package app

import (
	"context"
	"log"
	"sync"

	"speed-trivia-service/internal/domain"
)

// TopN is the scoreboard's fixed ranked window. Never paginated.
const TopN = 10

// Scoreboard serves the live top-10 view: an immediate snapshot on
// subscribe, then a re-fetched snapshot on every score change. Both paths
// fetch the authoritative current ranking, so last-write-wins rendering is
// safe.
type Scoreboard struct {
	store ScoreStore
	feed  ScoreFeed
}

func NewScoreboard(store ScoreStore, feed ScoreFeed) *Scoreboard {
	return &Scoreboard{store: store, feed: feed}
}

// Top returns the current ranked window for a quiz.
func (b *Scoreboard) Top(ctx context.Context, quizID string) ([]domain.Score, error) {
	return b.store.TopScores(ctx, quizID, TopN)
}

// Subscribe opens a live view on a quiz's scoreboard. The returned channel
// carries full top-10 snapshots; the cancel function is idempotent and must
// run on teardown to release the feed subscription.
func (b *Scoreboard) Subscribe(ctx context.Context, quizID string) (<-chan []domain.Score, func(), error) {
	signals, cancelFeed, err := b.feed.Subscribe(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan []domain.Score, 1)
	go func() {
		defer close(out)
		b.push(ctx, out, quizID)
		for {
			select {
			case _, ok := <-signals:
				if !ok {
					return
				}
				b.push(ctx, out, quizID)
			case <-ctx.Done():
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(cancelFeed)
	}
	return out, cancel, nil
}

// push fetches the current top-10 and delivers it, replacing any undelivered
// snapshot so a slow consumer always sees the freshest ranking.
func (b *Scoreboard) push(ctx context.Context, out chan []domain.Score, quizID string) {
	scores, err := b.store.TopScores(ctx, quizID, TopN)
	if err != nil {
		log.Printf("fetching scoreboard for quiz %s: %v", quizID, err)
		return
	}
	select {
	case out <- scores:
	default:
		select {
		case <-out:
		default:
		}
		out <- scores
	}
}
