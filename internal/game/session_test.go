package game

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"speed-trivia-service/internal/domain"
)

func fastOptions(seed int64) Options {
	return Options{
		PreloadDelay:      time.Millisecond,
		CountdownInterval: time.Millisecond,
		TickInterval:      time.Millisecond,
		Rand:              rand.New(rand.NewSource(seed)),
	}
}

func collectUntilQuestion(t *testing.T, events <-chan Event) (countdowns []int, first *QuestionView) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("event stream closed before first question")
			}
			switch ev.Type {
			case EventCountdown:
				countdowns = append(countdowns, ev.Countdown)
			case EventQuestion:
				return countdowns, ev.Question
			}
		case <-deadline:
			t.Fatalf("timed out waiting for first question")
		}
	}
}

func TestCountdownEmitsThreeTwoOne(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := NewSession("Alice", "quiz-1", domain.LangEnglish, domain.FallbackQuestions(), fastOptions(1))
	go session.Run(ctx)

	countdowns, first := collectUntilQuestion(t, session.Events())
	if len(countdowns) != 3 || countdowns[0] != 3 || countdowns[1] != 2 || countdowns[2] != 1 {
		t.Fatalf("expected countdown 3,2,1, got %v", countdowns)
	}
	if first.Index != 0 || first.Total != len(domain.FallbackQuestions()) {
		t.Fatalf("unexpected first question frame: %+v", first)
	}
}

func TestSessionScoresAndCompletes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	questions := domain.FallbackQuestions()[:2]
	session := NewSession("Alice", "quiz-1", domain.LangEnglish, questions, fastOptions(2))
	go session.Run(ctx)

	_, _ = collectUntilQuestion(t, session.Events())

	// Answer question 1 correctly, question 2 incorrectly.
	shuffled := session.Questions()
	if err := session.Answer(ctx, shuffled[0].CorrectIndex); err != nil {
		t.Fatalf("answer 1: %v", err)
	}
	wrong := (shuffled[1].CorrectIndex + 1) % len(shuffled[1].Options)
	if err := session.Answer(ctx, wrong); err != nil {
		t.Fatalf("answer 2: %v", err)
	}

	result := waitForResult(t, session.Events())
	if result.Score != 1 || result.TotalQuestions != 2 {
		t.Fatalf("expected score 1/2, got %d/%d", result.Score, result.TotalQuestions)
	}
	if result.Language != domain.LangEnglish || result.PlayerName != "Alice" || result.QuizID != "quiz-1" {
		t.Fatalf("unexpected result metadata: %+v", result)
	}
	if result.Time < 0 {
		t.Fatalf("negative elapsed time: %d", result.Time)
	}
}

func TestSessionScoreNeverExceedsQuestionCount(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	questions := domain.FallbackQuestions()
	session := NewSession("Bob", "", domain.LangArabic, questions, fastOptions(3))
	go session.Run(ctx)

	_, _ = collectUntilQuestion(t, session.Events())
	for _, sq := range session.Questions() {
		if err := session.Answer(ctx, sq.CorrectIndex); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}

	result := waitForResult(t, session.Events())
	if result.Score != len(questions) {
		t.Fatalf("expected perfect score %d, got %d", len(questions), result.Score)
	}
	if result.QuizID != "" {
		t.Fatalf("expected empty quiz id, got %q", result.QuizID)
	}
}

func TestAnswerBeforeActiveIsRejected(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := fastOptions(4)
	opts.PreloadDelay = time.Second
	session := NewSession("Alice", "", domain.LangEnglish, domain.FallbackQuestions(), opts)
	go session.Run(ctx)

	if err := session.Answer(ctx, 0); err != domain.ErrSessionNotActive {
		t.Fatalf("expected ErrSessionNotActive, got %v", err)
	}
}

func TestEmptyQuestionSetStaysInPreloading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := NewSession("Alice", "quiz-1", domain.LangEnglish, nil, fastOptions(5))
	go session.Run(ctx)

	sawNoQuestions := false
	deadline := time.After(5 * time.Second)
	for !sawNoQuestions {
		select {
		case ev, ok := <-session.Events():
			if !ok {
				t.Fatalf("stream closed before noQuestions frame")
			}
			switch ev.Type {
			case EventNoQuestions:
				sawNoQuestions = true
			case EventCountdown, EventQuestion, EventResult:
				t.Fatalf("session advanced past preloading: %+v", ev)
			}
		case <-deadline:
			t.Fatalf("timed out waiting for noQuestions frame")
		}
	}

	if err := session.Answer(ctx, 0); err != domain.ErrSessionNotActive {
		t.Fatalf("expected ErrSessionNotActive in dead end, got %v", err)
	}
}

func TestTeardownClosesEventStream(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session := NewSession("Alice", "", domain.LangEnglish, domain.FallbackQuestions(), fastOptions(6))
	done := make(chan struct{})
	go func() {
		session.Run(ctx)
		close(done)
	}()

	_, _ = collectUntilQuestion(t, session.Events())
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not tear down on cancellation")
	}
	if err := session.Answer(context.Background(), 0); err != domain.ErrSessionClosed {
		t.Fatalf("expected ErrSessionClosed after teardown, got %v", err)
	}
}

func waitForResult(t *testing.T, events <-chan Event) domain.GameResult {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				t.Fatalf("stream closed before result")
			}
			if ev.Type == EventResult {
				return *ev.Result
			}
		case <-deadline:
			t.Fatalf("timed out waiting for result")
		}
	}
}
