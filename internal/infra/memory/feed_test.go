package memory

import (
	"context"
	"testing"
	"time"
)

func TestScoreFeedDeliversSignals(t *testing.T) {
	ctx := context.Background()
	feed := NewScoreFeed()

	ch, cancel, err := feed.Subscribe(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	if err := feed.Publish(ctx, "quiz-1"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("expected a signal")
	}

	// Other quizzes do not leak across.
	if err := feed.Publish(ctx, "quiz-2"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	select {
	case <-ch:
		t.Fatalf("received signal for a different quiz")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestScoreFeedSignalsCoalesce(t *testing.T) {
	ctx := context.Background()
	feed := NewScoreFeed()
	ch, cancel, _ := feed.Subscribe(ctx, "quiz-1")
	defer cancel()

	for i := 0; i < 5; i++ {
		_ = feed.Publish(ctx, "quiz-1")
	}
	<-ch
	select {
	case <-ch:
		t.Fatalf("signals should coalesce while undelivered")
	default:
	}
}

func TestScoreFeedCancelIsIdempotent(t *testing.T) {
	ctx := context.Background()
	feed := NewScoreFeed()
	ch, cancel, _ := feed.Subscribe(ctx, "quiz-1")

	cancel()
	cancel() // second call must not panic

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel after cancel")
	}
	// Publishing after cancel must not panic either.
	if err := feed.Publish(ctx, "quiz-1"); err != nil {
		t.Fatalf("publish after cancel: %v", err)
	}
}
