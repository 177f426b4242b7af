package memory

import (
	"context"
	"testing"
	"time"

	"speed-trivia-service/internal/domain"
)

type countingSource struct {
	inner         *Store
	questionCalls int
	configCalls   int
}

func (c *countingSource) Questions(ctx context.Context, quizID string) ([]domain.Question, error) {
	c.questionCalls++
	return c.inner.Questions(ctx, quizID)
}

func (c *countingSource) Config(ctx context.Context, quizID string) (domain.QuizRecord, error) {
	c.configCalls++
	return c.inner.Config(ctx, quizID)
}

func seededSource(t *testing.T) *countingSource {
	t.Helper()
	ctx := context.Background()
	store := NewStore()
	if _, err := store.CreateQuiz(ctx, domain.QuizRecord{ID: "quiz-1", Title: "T"}); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
	if _, err := store.CreateQuestion(ctx, "quiz-1", domain.FallbackQuestions()[0]); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return &countingSource{inner: store}
}

func TestQuizCacheHitsAvoidSource(t *testing.T) {
	ctx := context.Background()
	source := seededSource(t)
	cache := NewQuizCache(source, time.Minute)

	if _, err := cache.Questions(ctx, "quiz-1"); err != nil {
		t.Fatalf("questions: %v", err)
	}
	if _, err := cache.Questions(ctx, "quiz-1"); err != nil {
		t.Fatalf("questions: %v", err)
	}
	if source.questionCalls != 1 {
		t.Fatalf("expected one source load, got %d", source.questionCalls)
	}

	if _, err := cache.Config(ctx, "quiz-1"); err != nil {
		t.Fatalf("config: %v", err)
	}
	_, _ = cache.Config(ctx, "quiz-1")
	if source.configCalls != 1 {
		t.Fatalf("expected one config load, got %d", source.configCalls)
	}
}

func TestQuizCacheInvalidate(t *testing.T) {
	ctx := context.Background()
	source := seededSource(t)
	cache := NewQuizCache(source, time.Minute)

	_, _ = cache.Questions(ctx, "quiz-1")
	cache.Invalidate(ctx, "quiz-1")
	_, _ = cache.Questions(ctx, "quiz-1")
	if source.questionCalls != 2 {
		t.Fatalf("expected reload after invalidate, got %d calls", source.questionCalls)
	}
}

func TestQuizCachePropagatesNotFound(t *testing.T) {
	ctx := context.Background()
	cache := NewQuizCache(seededSource(t), time.Minute)
	if _, err := cache.Config(ctx, "missing"); err != domain.ErrQuizNotFound {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}
