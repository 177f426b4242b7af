package redis

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ScoreFeed fans score-set change signals out across service instances via
// Redis Pub/Sub, channel "scores:{quizID}". Payloads carry no data;
// subscribers re-fetch the authoritative top-10 on every signal.
type ScoreFeed struct {
	client *redis.Client
}

func NewScoreFeed(client *redis.Client) *ScoreFeed {
	return &ScoreFeed{client: client}
}

func (f *ScoreFeed) Publish(ctx context.Context, quizID string) error {
	return f.client.Publish(ctx, f.channel(quizID), "changed").Err()
}

// Subscribe opens a Pub/Sub subscription for the quiz. The returned cancel
// function is idempotent and closes both the subscription and the signal
// channel.
func (f *ScoreFeed) Subscribe(ctx context.Context, quizID string) (<-chan struct{}, func(), error) {
	pubsub := f.client.Subscribe(ctx, f.channel(quizID))
	// Confirm the subscription before reporting success.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	signals := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		defer close(signals)
		msgs := pubsub.Channel()
		for {
			select {
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case signals <- struct{}{}:
				default:
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}
	return signals, cancel, nil
}

func (f *ScoreFeed) channel(quizID string) string {
	return "scores:" + quizID
}
