package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/domain"
)

// QuizCache caches question banks and skin records with TTL to avoid
// repeated backing-store hits during a quiz event. Expirations carry up to
// 10% jitter to spread reloads.
type QuizCache struct {
	source app.QuizSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu        sync.RWMutex
	questions map[string]cachedQuestions
	configs   map[string]cachedConfig
}

type cachedQuestions struct {
	bank      []domain.Question
	expiresAt time.Time
}

type cachedConfig struct {
	rec       domain.QuizRecord
	expiresAt time.Time
}

func NewQuizCache(source app.QuizSource, ttl time.Duration) *QuizCache {
	return &QuizCache{
		source:    source,
		ttl:       ttl,
		clock:     time.Now,
		questions: make(map[string]cachedQuestions),
		configs:   make(map[string]cachedConfig),
	}
}

func (c *QuizCache) Questions(ctx context.Context, quizID string) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.questions[quizID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.bank, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("questions:"+quizID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.questions[quizID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.bank, nil
		}
		c.mu.RUnlock()

		bank, err := c.source.Questions(ctx, quizID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.questions[quizID] = cachedQuestions{bank: bank, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuizCache) Config(ctx context.Context, quizID string) (domain.QuizRecord, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.configs[quizID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.rec, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("config:"+quizID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.configs[quizID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.rec, nil
		}
		c.mu.RUnlock()

		rec, err := c.source.Config(ctx, quizID)
		if err != nil {
			return domain.QuizRecord{}, err
		}

		c.mu.Lock()
		c.configs[quizID] = cachedConfig{rec: rec, expiresAt: now.Add(c.ttlWithJitter())}
		c.mu.Unlock()
		return rec, nil
	})
	if err != nil {
		return domain.QuizRecord{}, err
	}
	return result.(domain.QuizRecord), nil
}

// Invalidate drops a quiz's cached entries; the admin flow calls it after
// writes so edits show up without waiting out the TTL.
func (c *QuizCache) Invalidate(_ context.Context, quizID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.questions, quizID)
	delete(c.configs, quizID)
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
