package container

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pokedex/explorer/internal/client"
	"pokedex/explorer/internal/config"
	"pokedex/explorer/internal/domain/task"
	"pokedex/explorer/internal/proxy"
	"pokedex/explorer/internal/queue"
	"pokedex/explorer/internal/repository"
	"pokedex/explorer/internal/service"
	"pokedex/explorer/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	sessionTokenTTL = 24 * time.Hour
	// Empty XREADGROUP reads in a row before an export worker gives up.
	exportIdleRounds = 3
)

// Container holds all initialized components. The PokeAPI side is always
// ready; Redis and Postgres are connected on demand by the commands that
// need them.
type Container struct {
	Config    *config.Config
	Client    client.PokeAPIClient
	Explorer  *service.Explorer
	Sequencer state.Sequencer

	Repository   repository.ChainRepository
	Queue        queue.Queue
	StateManager state.StateManager
	Exporter     *service.Exporter

	db         *pgxpool.Pool
	redis      *redis.Client
	redisQueue *queue.RedisQueue
}

// ExportStatus summarizes the export pipeline as recorded in Redis.
type ExportStatus struct {
	FromChain         int              `json:"from_chain"`
	ToChain           int              `json:"to_chain"`
	LastEnqueuedChain int              `json:"last_enqueued_chain"`
	Pending           map[string]int64 `json:"pending"`
}

// New creates a new container with the PokeAPI client and explorer initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config:    cfg,
		Sequencer: state.NewMemorySequencer(),
	}

	probeURL := cfg.PokeAPI.BaseURL + "/pokemon?limit=1"
	proxySupplier, err := proxy.NewProxySupplier(ctx, cfg.PokeAPI.Proxies, probeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize proxy supplier: %w", err)
	}

	pokeClient := client.NewPokeAPIClient(cfg.PokeAPI, proxySupplier)
	container.Client = pokeClient
	container.Explorer = service.NewExplorer(pokeClient, cfg.PokeAPI.BatchSize, cfg.PokeAPI.MaxWorkers)

	return container, nil
}

// NewSession starts a search session. Sessions share tokens through Redis
// once ConnectRedis has been called.
func (c *Container) NewSession(id string) *service.Session {
	return service.NewSession(id, c.Explorer, c.Sequencer)
}

// ConnectRedis opens the Redis connection and switches search tokens to it.
func (c *Container) ConnectRedis(ctx context.Context) error {
	if c.redis != nil {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Config.Redis.Addr(),
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.Database,
	})

	// Test connection
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		rdb.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("✅ Connected to Redis successfully")

	c.redis = rdb
	c.Sequencer = state.NewRedisSequencer(rdb, c.Config.Redis.KeyPrefix, sessionTokenTTL)
	c.StateManager = state.NewRedisStateManager(rdb, c.Config.Redis.KeyPrefix)
	return nil
}

// ConnectQueue opens Redis and makes sure the export streams exist.
func (c *Container) ConnectQueue(ctx context.Context) error {
	if c.redisQueue != nil {
		return nil
	}
	if err := c.ConnectRedis(ctx); err != nil {
		return err
	}

	redisQueue, err := queue.NewRedisQueue(ctx, c.redis, c.Config.Redis)
	if err != nil {
		return err
	}
	c.redisQueue = redisQueue
	c.Queue = redisQueue
	return nil
}

// ConnectDatabase opens Postgres and creates the chain table.
func (c *Container) ConnectDatabase(ctx context.Context) error {
	if c.db != nil {
		return nil
	}

	db, err := pgxpool.New(ctx, c.Config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to create database pool: %w", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.db = db

	log.Info("✅ Connected to Postgres successfully")

	chainRepo := repository.NewChainRepository(db)
	if err := chainRepo.EnsureSchema(ctx); err != nil {
		return err
	}
	c.Repository = chainRepo
	return nil
}

// ConnectStorage prepares everything the export pipeline needs: Redis
// streams, progress state and the Postgres chain table.
func (c *Container) ConnectStorage(ctx context.Context) error {
	if err := c.ConnectQueue(ctx); err != nil {
		return err
	}
	if err := c.ConnectDatabase(ctx); err != nil {
		return err
	}

	c.Exporter = service.NewExporter(
		c.Client,
		c.Repository,
		c.Queue,
		c.StateManager,
		c.Config.Export.SaveInterval,
		c.Config.Redis.MinIdleTime,
		c.Config.Export.MaxRetries,
	)

	return nil
}

// RunExport enqueues chains from..to and runs workers until the streams are
// drained. With follow set the workers keep waiting for new tasks.
func (c *Container) RunExport(ctx context.Context, from, to, workers int, follow bool) error {
	if c.Exporter == nil {
		return fmt.Errorf("storage is not connected")
	}

	if !follow {
		c.Exporter.StopWhenIdle(exportIdleRounds)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Enqueue chain export tasks
	g.Go(func() error {
		_, err := c.Exporter.EnqueueChains(ctx, from, to)
		return err
	})

	// Run workers to process tasks
	g.Go(func() error {
		return c.Exporter.RunWorkers(ctx, workers)
	})

	return g.Wait()
}

// Status reports enqueue progress for chains from..to and the messages still
// pending per stream.
func (c *Container) Status(ctx context.Context, from, to int) (*ExportStatus, error) {
	if err := c.ConnectQueue(ctx); err != nil {
		return nil, err
	}

	last, err := c.StateManager.GetLastEnqueuedChain(ctx, from, to)
	if err != nil {
		return nil, err
	}

	status := &ExportStatus{
		FromChain:         from,
		ToChain:           to,
		LastEnqueuedChain: last,
		Pending:           map[string]int64{},
	}
	for _, taskType := range task.Types {
		pending, err := c.redisQueue.Pending(ctx, c.redisQueue.StreamName(taskType))
		if err != nil {
			return nil, err
		}
		status.Pending[taskType] = pending
	}
	return status, nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Debug("Shutting down container...")

	if c.db != nil {
		c.db.Close()
		c.db = nil
	}
	if c.redis != nil {
		rdb := c.redis
		c.redis = nil
		if err := rdb.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	log.Debug("Container shut down successfully")
	return nil
}
