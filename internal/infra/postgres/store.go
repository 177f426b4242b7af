package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"speed-trivia-service/internal/domain"
)

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes"`

	ID                            string    `bun:"id,pk"`
	Title                         string    `bun:"title"`
	BackgroundImagePath           string    `bun:"background_image_path"`
	GradientColor1                string    `bun:"gradient_color_1"`
	GradientColor2                string    `bun:"gradient_color_2"`
	LogoPath                      string    `bun:"logo_path"`
	ButtonColorArabic             string    `bun:"button_color_arabic"`
	ButtonColorEnglish            string    `bun:"button_color_english"`
	ScoreboardBackgroundImagePath string    `bun:"scoreboard_background_image_path"`
	ScoreboardGradientColor1      string    `bun:"scoreboard_gradient_color_1"`
	ScoreboardGradientColor2      string    `bun:"scoreboard_gradient_color_2"`
	CreatedAt                     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID            int      `bun:"id,pk,autoincrement"`
	QuizID        string   `bun:"quiz_id"`
	QuestionEN    string   `bun:"question_en"`
	QuestionAR    string   `bun:"question_ar"`
	OptionsEN     []string `bun:"options_en,array"`
	OptionsAR     []string `bun:"options_ar,array"`
	CorrectAnswer int      `bun:"correct_answer"`
}

type scoreRow struct {
	bun.BaseModel `bun:"table:scores"`

	ID             int64     `bun:"id,pk,autoincrement"`
	QuizID         string    `bun:"quiz_id"`
	PlayerName     string    `bun:"player_name"`
	Score          int       `bun:"score"`
	TotalQuestions int       `bun:"total_questions"`
	Time           int64     `bun:"time"`
	Language       string    `bun:"language"`
	CreatedAt      time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

type operatorRow struct {
	bun.BaseModel `bun:"table:operators"`

	ID           int64     `bun:"id,pk,autoincrement"`
	Email        string    `bun:"email"`
	PasswordHash string    `bun:"password_hash"`
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Store is the bun-backed record store: admin CRUD, leaderboard rows and
// operator accounts. Quiz deletion cascades to questions and scores via
// foreign keys.
type Store struct {
	db *bun.DB
}

// NewStore wraps an existing bun handle.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Connect opens a bun handle for the given Postgres DSN.
func Connect(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListQuizzes(ctx context.Context) ([]domain.QuizRecord, error) {
	var rows []quizRow
	if err := s.db.NewSelect().Model(&rows).OrderExpr("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	out := make([]domain.QuizRecord, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

func (s *Store) GetQuiz(ctx context.Context, quizID string) (domain.QuizRecord, error) {
	var row quizRow
	err := s.db.NewSelect().Model(&row).Where("id = ?", quizID).Scan(ctx)
	if err == sql.ErrNoRows {
		return domain.QuizRecord{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.QuizRecord{}, fmt.Errorf("get quiz: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Store) CreateQuiz(ctx context.Context, rec domain.QuizRecord) (domain.QuizRecord, error) {
	row := quizRowFrom(rec)
	if _, err := s.db.NewInsert().Model(&row).Returning("created_at").Exec(ctx); err != nil {
		return domain.QuizRecord{}, fmt.Errorf("create quiz: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Store) UpdateQuiz(ctx context.Context, rec domain.QuizRecord) (domain.QuizRecord, error) {
	row := quizRowFrom(rec)
	res, err := s.db.NewUpdate().Model(&row).
		ExcludeColumn("created_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.QuizRecord{}, fmt.Errorf("update quiz: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.QuizRecord{}, domain.ErrQuizNotFound
	}
	return s.GetQuiz(ctx, rec.ID)
}

func (s *Store) DeleteQuiz(ctx context.Context, quizID string) error {
	res, err := s.db.NewDelete().Model((*quizRow)(nil)).Where("id = ?", quizID).Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete quiz: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

func (s *Store) ListQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	var rows []questionRow
	err := s.db.NewSelect().Model(&rows).
		Where("quiz_id = ?", quizID).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	out := make([]domain.Question, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}

func (s *Store) CreateQuestion(ctx context.Context, quizID string, q domain.Question) (domain.Question, error) {
	row := questionRowFrom(quizID, q)
	row.ID = 0
	if _, err := s.db.NewInsert().Model(&row).Returning("id").Exec(ctx); err != nil {
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}
	return row.toDomain(), nil
}

func (s *Store) UpdateQuestion(ctx context.Context, quizID string, q domain.Question) (domain.Question, error) {
	row := questionRowFrom(quizID, q)
	res, err := s.db.NewUpdate().Model(&row).
		Column("question_en", "question_ar", "options_en", "options_ar", "correct_answer").
		Where("id = ? AND quiz_id = ?", q.ID, quizID).
		Exec(ctx)
	if err != nil {
		return domain.Question{}, fmt.Errorf("update question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, nil
}

func (s *Store) DeleteQuestion(ctx context.Context, quizID string, questionID int) error {
	res, err := s.db.NewDelete().Model((*questionRow)(nil)).
		Where("id = ? AND quiz_id = ?", questionID, quizID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (s *Store) InsertScore(ctx context.Context, score domain.Score) error {
	row := scoreRow{
		QuizID:         score.QuizID,
		PlayerName:     score.PlayerName,
		Score:          score.Score,
		TotalQuestions: score.TotalQuestions,
		Time:           score.Time,
		Language:       score.Language,
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *Store) TopScores(ctx context.Context, quizID string, limit int) ([]domain.Score, error) {
	var rows []scoreRow
	err := s.db.NewSelect().Model(&rows).
		Where("quiz_id = ?", quizID).
		OrderExpr("score DESC").
		OrderExpr("time ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	out := make([]domain.Score, len(rows))
	for i, r := range rows {
		out[i] = domain.Score{
			ID:             r.ID,
			QuizID:         r.QuizID,
			PlayerName:     r.PlayerName,
			Score:          r.Score,
			TotalQuestions: r.TotalQuestions,
			Time:           r.Time,
			Language:       r.Language,
			CreatedAt:      r.CreatedAt,
		}
	}
	return out, nil
}

func (s *Store) OperatorByEmail(ctx context.Context, email string) (domain.Operator, error) {
	var row operatorRow
	err := s.db.NewSelect().Model(&row).Where("email = ?", email).Scan(ctx)
	if err == sql.ErrNoRows {
		return domain.Operator{}, domain.ErrOperatorNotFound
	}
	if err != nil {
		return domain.Operator{}, fmt.Errorf("get operator: %w", err)
	}
	return domain.Operator{ID: row.ID, Email: row.Email, PasswordHash: row.PasswordHash, CreatedAt: row.CreatedAt}, nil
}

func (s *Store) CreateOperator(ctx context.Context, email, passwordHash string) (domain.Operator, error) {
	row := operatorRow{Email: email, PasswordHash: passwordHash}
	if _, err := s.db.NewInsert().Model(&row).
		On("CONFLICT (email) DO UPDATE").
		Set("password_hash = EXCLUDED.password_hash").
		Returning("id, created_at").
		Exec(ctx); err != nil {
		return domain.Operator{}, fmt.Errorf("create operator: %w", err)
	}
	return domain.Operator{ID: row.ID, Email: row.Email, PasswordHash: row.PasswordHash, CreatedAt: row.CreatedAt}, nil
}

func (r quizRow) toDomain() domain.QuizRecord {
	return domain.QuizRecord{
		ID:                            r.ID,
		Title:                         r.Title,
		BackgroundImagePath:           r.BackgroundImagePath,
		GradientColor1:                r.GradientColor1,
		GradientColor2:                r.GradientColor2,
		LogoPath:                      r.LogoPath,
		ButtonColorArabic:             r.ButtonColorArabic,
		ButtonColorEnglish:            r.ButtonColorEnglish,
		ScoreboardBackgroundImagePath: r.ScoreboardBackgroundImagePath,
		ScoreboardGradientColor1:      r.ScoreboardGradientColor1,
		ScoreboardGradientColor2:      r.ScoreboardGradientColor2,
		CreatedAt:                     r.CreatedAt,
	}
}

func quizRowFrom(rec domain.QuizRecord) quizRow {
	return quizRow{
		ID:                            rec.ID,
		Title:                         rec.Title,
		BackgroundImagePath:           rec.BackgroundImagePath,
		GradientColor1:                rec.GradientColor1,
		GradientColor2:                rec.GradientColor2,
		LogoPath:                      rec.LogoPath,
		ButtonColorArabic:             rec.ButtonColorArabic,
		ButtonColorEnglish:            rec.ButtonColorEnglish,
		ScoreboardBackgroundImagePath: rec.ScoreboardBackgroundImagePath,
		ScoreboardGradientColor1:      rec.ScoreboardGradientColor1,
		ScoreboardGradientColor2:      rec.ScoreboardGradientColor2,
		CreatedAt:                     rec.CreatedAt,
	}
}

func (r questionRow) toDomain() domain.Question {
	return domain.Question{
		ID:            r.ID,
		Prompt:        domain.LocalizedText{EN: r.QuestionEN, AR: r.QuestionAR},
		Options:       domain.LocalizedOptions{EN: r.OptionsEN, AR: r.OptionsAR},
		CorrectAnswer: r.CorrectAnswer,
	}
}

func questionRowFrom(quizID string, q domain.Question) questionRow {
	return questionRow{
		ID:            q.ID,
		QuizID:        quizID,
		QuestionEN:    q.Prompt.EN,
		QuestionAR:    q.Prompt.AR,
		OptionsEN:     q.Options.EN,
		OptionsAR:     q.Options.AR,
		CorrectAnswer: q.CorrectAnswer,
	}
}
