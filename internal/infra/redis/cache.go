package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/domain"
)

// QuizCache caches question banks and skin records as JSON values in Redis
// and falls back to the backing source on a miss. Keys:
//
//	quiz:{quizID}:questions  JSON array of questions
//	quiz:{quizID}:config     JSON quiz record
type QuizCache struct {
	client *redis.Client
	source app.QuizSource
	ttl    time.Duration
	sf     singleflight.Group
}

func NewQuizCache(client *redis.Client, source app.QuizSource, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		source: source,
		ttl:    ttl,
	}
}

func (c *QuizCache) Questions(ctx context.Context, quizID string) ([]domain.Question, error) {
	key := c.questionsKey(quizID)

	if bank, ok := c.cachedQuestions(ctx, key); ok {
		return bank, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check in case another goroutine filled the cache.
		if bank, ok := c.cachedQuestions(ctx, key); ok {
			return bank, nil
		}
		bank, err := c.source.Questions(ctx, quizID)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, bank)
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuizCache) Config(ctx context.Context, quizID string) (domain.QuizRecord, error) {
	key := c.configKey(quizID)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var rec domain.QuizRecord
		if json.Unmarshal(raw, &rec) == nil {
			return rec, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var rec domain.QuizRecord
			if json.Unmarshal(raw, &rec) == nil {
				return rec, nil
			}
		}
		rec, err := c.source.Config(ctx, quizID)
		if err != nil {
			return domain.QuizRecord{}, err
		}
		c.set(ctx, key, rec)
		return rec, nil
	})
	if err != nil {
		return domain.QuizRecord{}, err
	}
	return result.(domain.QuizRecord), nil
}

// Invalidate drops a quiz's cached entries after an admin write.
func (c *QuizCache) Invalidate(ctx context.Context, quizID string) {
	_ = c.client.Del(ctx, c.questionsKey(quizID), c.configKey(quizID)).Err()
}

func (c *QuizCache) cachedQuestions(ctx context.Context, key string) ([]domain.Question, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var bank []domain.Question
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, false
	}
	return bank, true
}

// set is best-effort; a failed cache write only costs a reload.
func (c *QuizCache) set(ctx context.Context, key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
}

func (c *QuizCache) questionsKey(quizID string) string {
	return "quiz:" + quizID + ":questions"
}

func (c *QuizCache) configKey(quizID string) string {
	return "quiz:" + quizID + ":config"
}

func (c *QuizCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
