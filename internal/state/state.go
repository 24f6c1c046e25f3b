package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// StateManager remembers how far chain enqueueing got between runs. Progress
// is kept per requested range, so runs over other ranges start fresh.
type StateManager interface {
	GetLastEnqueuedChain(ctx context.Context, from, to int) (int, error)
	SetLastEnqueuedChain(ctx context.Context, from, to, chainID int) error
}

type redisStateManager struct {
	redisClient *redis.Client
	keyPrefix   string
}

func NewRedisStateManager(redisClient *redis.Client, keyPrefix string) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		keyPrefix:   keyPrefix,
	}
}

func progressKey(keyPrefix string, from, to int) string {
	return fmt.Sprintf("%sprogress:chain:%d-%d", keyPrefix, from, to)
}

func (s *redisStateManager) key(from, to int) string {
	return progressKey(s.keyPrefix, from, to)
}

func (s *redisStateManager) GetLastEnqueuedChain(ctx context.Context, from, to int) (int, error) {
	val, err := s.redisClient.Get(ctx, s.key(from, to)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil // No progress saved yet
		}
		return 0, fmt.Errorf("failed to get last enqueued chain: %w", err)
	}

	chainID, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("failed to parse last enqueued chain %q: %w", val, err)
	}

	return chainID, nil
}

func (s *redisStateManager) SetLastEnqueuedChain(ctx context.Context, from, to, chainID int) error {
	if err := s.redisClient.Set(ctx, s.key(from, to), chainID, 0).Err(); err != nil {
		return fmt.Errorf("failed to set last enqueued chain: %w", err)
	}
	return nil
}
