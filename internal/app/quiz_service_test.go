package app_test

import (
	"context"
	"testing"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/blob"
	"speed-trivia-service/internal/domain"
	"speed-trivia-service/internal/infra/memory"
)

func seededService(t *testing.T) (*app.QuizService, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	if _, err := store.CreateQuiz(ctx, domain.QuizRecord{
		ID:             "quiz-1",
		Title:          "Office Trivia",
		LogoPath:       "quiz-logos/acme.png",
		GradientColor1: "#111111",
	}); err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if _, err := store.CreateQuestion(ctx, "quiz-1", domain.Question{
		Prompt:        domain.LocalizedText{EN: "2+2?", AR: "٢+٢؟"},
		Options:       domain.LocalizedOptions{EN: []string{"3", "4", "5", "6"}, AR: []string{"٣", "٤", "٥", "٦"}},
		CorrectAnswer: 1,
	}); err != nil {
		t.Fatalf("create question: %v", err)
	}

	return app.NewQuizService(store, blob.NewFSStore(t.TempDir(), "/media")), store
}

func TestQuestionsForLoadsStoredSet(t *testing.T) {
	service, _ := seededService(t)

	questions := service.QuestionsFor(context.Background(), "quiz-1")
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Prompt.EN != "2+2?" {
		t.Fatalf("unexpected question %+v", questions[0])
	}
}

func TestQuestionsForFallsBack(t *testing.T) {
	service, _ := seededService(t)
	fallback := domain.FallbackQuestions()

	// No quiz selected.
	if got := service.QuestionsFor(context.Background(), ""); len(got) != len(fallback) {
		t.Fatalf("no quiz: expected fallback set, got %d questions", len(got))
	}
	// Unknown quiz.
	if got := service.QuestionsFor(context.Background(), "ghost"); len(got) != len(fallback) {
		t.Fatalf("unknown quiz: expected fallback set, got %d questions", len(got))
	}
}

func TestQuestionsForFallsBackOnEmptyBank(t *testing.T) {
	service, store := seededService(t)
	if _, err := store.CreateQuiz(context.Background(), domain.QuizRecord{ID: "empty", Title: "Empty"}); err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	got := service.QuestionsFor(context.Background(), "empty")
	if len(got) != len(domain.FallbackQuestions()) {
		t.Fatalf("expected fallback set, got %d questions", len(got))
	}
}

func TestConfigForResolvesImageURLs(t *testing.T) {
	service, _ := seededService(t)

	cfg := service.ConfigFor(context.Background(), "quiz-1")
	if cfg == nil {
		t.Fatal("expected config")
	}
	if cfg.Title != "Office Trivia" {
		t.Fatalf("unexpected title %q", cfg.Title)
	}
	// Stored path carries the bucket prefix; the URL must not double it.
	if cfg.LogoURL != "/media/quiz-logos/acme.png" {
		t.Fatalf("unexpected logo url %q", cfg.LogoURL)
	}
	if cfg.BackgroundImageURL != "" {
		t.Fatalf("expected empty background url, got %q", cfg.BackgroundImageURL)
	}
}

func TestConfigForUnknownQuizIsNil(t *testing.T) {
	service, _ := seededService(t)

	if cfg := service.ConfigFor(context.Background(), "ghost"); cfg != nil {
		t.Fatalf("expected nil config, got %+v", cfg)
	}
	if cfg := service.ConfigFor(context.Background(), ""); cfg != nil {
		t.Fatalf("expected nil config for empty id, got %+v", cfg)
	}
}

func TestConfigForFeedsThemeDefaults(t *testing.T) {
	service, _ := seededService(t)

	theme := domain.ThemeFor(service.ConfigFor(context.Background(), "ghost"))
	if theme.Title != domain.DefaultTitle {
		t.Fatalf("expected default title, got %q", theme.Title)
	}
}
