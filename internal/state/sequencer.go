package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sequencer issues monotonically increasing tokens per key. A lookup records
// the token it was issued and applies its result only while that token is
// still the latest one for the key.
type Sequencer interface {
	Next(ctx context.Context, key string) (int64, error)
	Current(ctx context.Context, key string) (int64, error)
}

type memorySequencer struct {
	mu     sync.Mutex
	tokens map[string]int64
}

func NewMemorySequencer() Sequencer {
	return &memorySequencer{tokens: make(map[string]int64)}
}

func (s *memorySequencer) Next(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[key]++
	return s.tokens[key], nil
}

func (s *memorySequencer) Current(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tokens[key], nil
}

// redisSequencer shares tokens between processes serving the same session.
type redisSequencer struct {
	redisClient *redis.Client
	keyPrefix   string
	ttl         time.Duration
}

func NewRedisSequencer(redisClient *redis.Client, keyPrefix string, ttl time.Duration) Sequencer {
	return &redisSequencer{
		redisClient: redisClient,
		keyPrefix:   keyPrefix + "search:seq:",
		ttl:         ttl,
	}
}

func (s *redisSequencer) Next(ctx context.Context, key string) (int64, error) {
	redisKey := s.keyPrefix + key

	pipe := s.redisClient.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	if s.ttl > 0 {
		pipe.Expire(ctx, redisKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to issue search token for %s: %w", key, err)
	}

	return incr.Val(), nil
}

func (s *redisSequencer) Current(ctx context.Context, key string) (int64, error) {
	val, err := s.redisClient.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read search token for %s: %w", key, err)
	}

	token, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse search token %q: %w", val, err)
	}
	return token, nil
}
