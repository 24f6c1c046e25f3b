package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pokedex/explorer/internal/config"
	"pokedex/explorer/internal/domain/task"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	fieldTaskType = "task_type"
	fieldTaskData = "task_data"
)

type Queue interface {
	AddTask(ctx context.Context, task task.Task) (string, error) // Returns message ID
	GetTask(ctx context.Context, consumer, stream string) (*redis.XMessage, error)
	AckTask(ctx context.Context, stream, msgID string) error
	AutoClaim(ctx context.Context, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error)
	StreamName(taskType string) string
}

type RedisQueue struct {
	redisClient  *redis.Client
	streamPrefix string
	groupName    string
	blockTimeout time.Duration
}

func NewRedisQueue(ctx context.Context, redisClient *redis.Client, cfg config.RedisConfig) (*RedisQueue, error) {
	q := &RedisQueue{
		redisClient:  redisClient,
		streamPrefix: cfg.KeyPrefix + "stream:",
		groupName:    cfg.ConsumerGroup,
		blockTimeout: 5 * time.Second,
	}

	// Consumer groups must exist before any worker reads
	if err := q.EnsureStreamsExist(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure streams exist: %w", err)
	}

	return q, nil
}

func (q *RedisQueue) StreamName(taskType string) string {
	return q.streamPrefix + taskType
}

func (q *RedisQueue) createGroup(ctx context.Context, stream string) error {
	err := q.redisClient.XGroupCreateMkStream(ctx, stream, q.groupName, "0").Err()
	if err != nil && strings.HasPrefix(err.Error(), "BUSYGROUP") {
		log.Debugf("Group %s already exists for stream %s", q.groupName, stream)
		return nil
	}
	return err
}

func (q *RedisQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	streamName := q.StreamName(t.TaskType())

	taskValue, err := t.TaskValue()
	if err != nil {
		return "", fmt.Errorf("failed to serialize task: %w", err)
	}

	messageID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			fieldTaskType: t.TaskType(),
			fieldTaskData: string(taskValue),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add task to Redis stream %s: %w", streamName, err)
	}

	log.Debugf("Added task %s to stream %s with message ID: %s", t.TaskType(), streamName, messageID)
	return messageID, nil
}

func (q *RedisQueue) GetTask(ctx context.Context, consumer, stream string) (*redis.XMessage, error) {
	result, err := q.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    1,
		Block:    q.blockTimeout,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // No new messages
		}
		return nil, fmt.Errorf("failed to read from Redis stream %s: %w", stream, err)
	}

	if len(result) == 0 || len(result[0].Messages) == 0 {
		return nil, nil
	}

	return &result[0].Messages[0], nil
}

func (q *RedisQueue) AckTask(ctx context.Context, stream, msgID string) error {
	return q.redisClient.XAck(ctx, stream, q.groupName, msgID).Err()
}

// AutoClaim takes over one message another consumer left pending for longer
// than minIdleTime.
func (q *RedisQueue) AutoClaim(ctx context.Context, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error) {
	result, _, err := q.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    q.groupName,
		Consumer: consumer,
		MinIdle:  minIdleTime,
		Start:    "0-0",
		Count:    1,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to claim messages from Redis stream %s: %w", stream, err)
	}

	return result, nil
}

// Pending reports how many messages are waiting in a stream's consumer group.
func (q *RedisQueue) Pending(ctx context.Context, stream string) (int64, error) {
	info, err := q.redisClient.XPending(ctx, stream, q.groupName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read pending count for %s: %w", stream, err)
	}
	return info.Count, nil
}

// EnsureStreamsExist creates every task stream and its consumer group.
func (q *RedisQueue) EnsureStreamsExist(ctx context.Context) error {
	log.Info("🔧 Creating Redis streams and consumer groups...")

	for _, taskType := range task.Types {
		streamName := q.StreamName(taskType)

		if err := q.createGroup(ctx, streamName); err != nil {
			return fmt.Errorf("failed to create consumer group for %s: %w", taskType, err)
		}

		log.Infof("✅ Stream %s and consumer group %s ready", streamName, q.groupName)
	}

	return nil
}
