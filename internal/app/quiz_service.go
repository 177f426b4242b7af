package app

import (
	"context"
	"errors"
	"log"

	"speed-trivia-service/internal/blob"
	"speed-trivia-service/internal/domain"
	"speed-trivia-service/internal/game"
)

// QuizSource loads quiz content and skin records (from cache/backing store).
type QuizSource interface {
	Questions(ctx context.Context, quizID string) ([]domain.Question, error)
	Config(ctx context.Context, quizID string) (domain.QuizRecord, error)
}

// ScoreStore persists leaderboard rows and serves the ranked window.
type ScoreStore interface {
	InsertScore(ctx context.Context, score domain.Score) error
	TopScores(ctx context.Context, quizID string, limit int) ([]domain.Score, error)
}

// ScoreFeed signals score-set changes per quiz. Subscribe returns a signal
// channel plus a cancel function the caller must invoke on teardown.
type ScoreFeed interface {
	Publish(ctx context.Context, quizID string) error
	Subscribe(ctx context.Context, quizID string) (<-chan struct{}, func(), error)
}

// AdminStore is the record-CRUD surface behind the admin console.
type AdminStore interface {
	ListQuizzes(ctx context.Context) ([]domain.QuizRecord, error)
	GetQuiz(ctx context.Context, quizID string) (domain.QuizRecord, error)
	CreateQuiz(ctx context.Context, rec domain.QuizRecord) (domain.QuizRecord, error)
	UpdateQuiz(ctx context.Context, rec domain.QuizRecord) (domain.QuizRecord, error)
	// DeleteQuiz cascades to the quiz's questions and scores.
	DeleteQuiz(ctx context.Context, quizID string) error

	ListQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
	CreateQuestion(ctx context.Context, quizID string, q domain.Question) (domain.Question, error)
	UpdateQuestion(ctx context.Context, quizID string, q domain.Question) (domain.Question, error)
	DeleteQuestion(ctx context.Context, quizID string, questionID int) error
}

// OperatorStore holds admin console accounts.
type OperatorStore interface {
	OperatorByEmail(ctx context.Context, email string) (domain.Operator, error)
	CreateOperator(ctx context.Context, email, passwordHash string) (domain.Operator, error)
}

// QuizService assembles the player-facing flow: question sets with the
// bundled fallback, resolved skin configs, and running sessions.
type QuizService struct {
	source QuizSource
	blobs  blob.Store
}

func NewQuizService(source QuizSource, blobs blob.Store) *QuizService {
	return &QuizService{source: source, blobs: blobs}
}

// QuestionsFor returns the question set for a quiz. Load failures and empty
// banks degrade to the bundled fallback set, so the play flow always works;
// the fallback is also used when no quiz identifier is supplied.
func (s *QuizService) QuestionsFor(ctx context.Context, quizID string) []domain.Question {
	if quizID == "" {
		return domain.FallbackQuestions()
	}
	questions, err := s.source.Questions(ctx, quizID)
	if err != nil {
		log.Printf("loading questions for quiz %s: %v; using fallback set", quizID, err)
		return domain.FallbackQuestions()
	}
	if len(questions) == 0 {
		return domain.FallbackQuestions()
	}
	return questions
}

// ConfigFor returns the player-facing skin for a quiz with image paths
// resolved to public URLs, or nil when the quiz has no stored config.
// Callers pass the nil through domain.ThemeFor and get usable defaults.
func (s *QuizService) ConfigFor(ctx context.Context, quizID string) *domain.QuizConfig {
	if quizID == "" {
		return nil
	}
	rec, err := s.source.Config(ctx, quizID)
	if err != nil {
		if !errors.Is(err, domain.ErrQuizNotFound) {
			log.Printf("loading config for quiz %s: %v", quizID, err)
		}
		return nil
	}
	return &domain.QuizConfig{
		ID:                           rec.ID,
		Title:                        rec.Title,
		BackgroundImageURL:           s.resolve(blob.BucketBackgrounds, rec.BackgroundImagePath),
		GradientColor1:               rec.GradientColor1,
		GradientColor2:               rec.GradientColor2,
		LogoURL:                      s.resolve(blob.BucketLogos, rec.LogoPath),
		ButtonColorArabic:            rec.ButtonColorArabic,
		ButtonColorEnglish:           rec.ButtonColorEnglish,
		ScoreboardBackgroundImageURL: s.resolve(blob.BucketBackgrounds, rec.ScoreboardBackgroundImagePath),
		ScoreboardGradientColor1:     rec.ScoreboardGradientColor1,
		ScoreboardGradientColor2:     rec.ScoreboardGradientColor2,
	}
}

// StartSession shuffles the quiz (or fallback) question set for the chosen
// locale and returns a session ready to Run.
func (s *QuizService) StartSession(ctx context.Context, quizID, playerName string, lang domain.Language, opts game.Options) *game.Session {
	questions := s.QuestionsFor(ctx, quizID)
	return game.NewSession(playerName, quizID, lang, questions, opts)
}

// resolve maps a stored image path to a public URL, tolerating paths that
// already carry the bucket name prefix.
func (s *QuizService) resolve(bucket, path string) string {
	if path == "" {
		return ""
	}
	url, err := s.blobs.PublicURL(bucket, blob.StripBucket(bucket, path))
	if err != nil {
		log.Printf("resolving %s/%s: %v", bucket, path, err)
		return ""
	}
	return url
}
