package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"speed-trivia-service/internal/domain"
)

// QuizSource serves the player-facing reads straight from Postgres over a
// pgx pool; the admin CRUD goes through the bun Store instead.
type QuizSource struct {
	pool *pgxpool.Pool
}

func NewQuizSource(pool *pgxpool.Pool) *QuizSource {
	return &QuizSource{pool: pool}
}

func (s *QuizSource) Questions(ctx context.Context, quizID string) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, question_en, question_ar, options_en, options_ar, correct_answer
		FROM questions
		WHERE quiz_id = $1
		ORDER BY id ASC`, quizID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var bank []domain.Question
	for rows.Next() {
		var q domain.Question
		if err := rows.Scan(&q.ID, &q.Prompt.EN, &q.Prompt.AR, &q.Options.EN, &q.Options.AR, &q.CorrectAnswer); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		bank = append(bank, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return bank, nil
}

func (s *QuizSource) Config(ctx context.Context, quizID string) (domain.QuizRecord, error) {
	var rec domain.QuizRecord
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, background_image_path, gradient_color_1, gradient_color_2,
		       logo_path, button_color_arabic, button_color_english,
		       scoreboard_background_image_path, scoreboard_gradient_color_1,
		       scoreboard_gradient_color_2, created_at
		FROM quizzes
		WHERE id = $1`, quizID).Scan(
		&rec.ID, &rec.Title, &rec.BackgroundImagePath, &rec.GradientColor1, &rec.GradientColor2,
		&rec.LogoPath, &rec.ButtonColorArabic, &rec.ButtonColorEnglish,
		&rec.ScoreboardBackgroundImagePath, &rec.ScoreboardGradientColor1,
		&rec.ScoreboardGradientColor2, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizRecord{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.QuizRecord{}, fmt.Errorf("load quiz config: %w", err)
	}
	return rec, nil
}
