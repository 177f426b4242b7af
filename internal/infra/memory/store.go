package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"speed-trivia-service/internal/domain"
)

// Store is an in-memory record store. It backs tests and the zero-backend
// mode where the service runs entirely off the bundled fallback content.
type Store struct {
	mu             sync.RWMutex
	quizzes        map[string]domain.QuizRecord
	questions      map[string][]domain.Question // quiz id -> ordered bank
	scores         map[string][]domain.Score
	operators      map[string]domain.Operator
	nextQuestionID int
	nextScoreID    int64
	nextOperatorID int64
}

func NewStore() *Store {
	return &Store{
		quizzes:        make(map[string]domain.QuizRecord),
		questions:      make(map[string][]domain.Question),
		scores:         make(map[string][]domain.Score),
		operators:      make(map[string]domain.Operator),
		nextQuestionID: 1,
		nextScoreID:    1,
		nextOperatorID: 1,
	}
}

// Questions implements app.QuizSource.
func (s *Store) Questions(_ context.Context, quizID string) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bank, ok := s.questions[quizID]
	if !ok {
		if _, exists := s.quizzes[quizID]; !exists {
			return nil, domain.ErrQuizNotFound
		}
	}
	return append([]domain.Question(nil), bank...), nil
}

// Config implements app.QuizSource.
func (s *Store) Config(_ context.Context, quizID string) (domain.QuizRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.quizzes[quizID]
	if !ok {
		return domain.QuizRecord{}, domain.ErrQuizNotFound
	}
	return rec, nil
}

func (s *Store) ListQuizzes(_ context.Context) ([]domain.QuizRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.QuizRecord, 0, len(s.quizzes))
	for _, rec := range s.quizzes {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) GetQuiz(ctx context.Context, quizID string) (domain.QuizRecord, error) {
	return s.Config(ctx, quizID)
}

func (s *Store) CreateQuiz(_ context.Context, rec domain.QuizRecord) (domain.QuizRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	s.quizzes[rec.ID] = rec
	return rec, nil
}

func (s *Store) UpdateQuiz(_ context.Context, rec domain.QuizRecord) (domain.QuizRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.quizzes[rec.ID]
	if !ok {
		return domain.QuizRecord{}, domain.ErrQuizNotFound
	}
	rec.CreatedAt = existing.CreatedAt
	s.quizzes[rec.ID] = rec
	return rec, nil
}

// DeleteQuiz removes the quiz and cascades to its questions and scores.
func (s *Store) DeleteQuiz(_ context.Context, quizID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quizID]; !ok {
		return domain.ErrQuizNotFound
	}
	delete(s.quizzes, quizID)
	delete(s.questions, quizID)
	delete(s.scores, quizID)
	return nil
}

func (s *Store) ListQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	return s.Questions(ctx, quizID)
}

func (s *Store) CreateQuestion(_ context.Context, quizID string, q domain.Question) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.quizzes[quizID]; !ok {
		return domain.Question{}, domain.ErrQuizNotFound
	}
	q.ID = s.nextQuestionID
	s.nextQuestionID++
	s.questions[quizID] = append(s.questions[quizID], q)
	return q, nil
}

func (s *Store) UpdateQuestion(_ context.Context, quizID string, q domain.Question) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bank := s.questions[quizID]
	for i := range bank {
		if bank[i].ID == q.ID {
			bank[i] = q
			return q, nil
		}
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}

func (s *Store) DeleteQuestion(_ context.Context, quizID string, questionID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bank := s.questions[quizID]
	for i := range bank {
		if bank[i].ID == questionID {
			s.questions[quizID] = append(bank[:i], bank[i+1:]...)
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

// InsertScore implements app.ScoreStore. Rows are append-only here; they
// disappear only when the quiz itself is deleted.
func (s *Store) InsertScore(_ context.Context, score domain.Score) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	score.ID = s.nextScoreID
	s.nextScoreID++
	if score.CreatedAt.IsZero() {
		score.CreatedAt = time.Now()
	}
	s.scores[score.QuizID] = append(s.scores[score.QuizID], score)
	return nil
}

// TopScores implements app.ScoreStore: score descending, elapsed time
// ascending on ties.
func (s *Store) TopScores(_ context.Context, quizID string, limit int) ([]domain.Score, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := append([]domain.Score(nil), s.scores[quizID]...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Time < rows[j].Time
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Store) OperatorByEmail(_ context.Context, email string) (domain.Operator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.operators[email]
	if !ok {
		return domain.Operator{}, domain.ErrOperatorNotFound
	}
	return op, nil
}

func (s *Store) CreateOperator(_ context.Context, email, passwordHash string) (domain.Operator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := domain.Operator{
		ID:           s.nextOperatorID,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.nextOperatorID++
	s.operators[email] = op
	return op, nil
}
