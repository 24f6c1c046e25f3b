package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"pokedex/explorer/internal/client"
	"pokedex/explorer/internal/domain/task"
	"pokedex/explorer/internal/evolution"
	"pokedex/explorer/internal/queue"
	"pokedex/explorer/internal/repository"
	"pokedex/explorer/internal/state"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Exporter walks a range of evolution chain ids through Redis streams: every
// id becomes a task, workers fetch and flatten the chain and store it.
type Exporter struct {
	source       evolution.ChainSource
	repository   repository.ChainRepository
	queue        queue.Queue
	stateManager state.StateManager
	saveInterval int
	minIdleTime  time.Duration
	maxRetries   int

	// Workers stop after this many empty reads in a row. Zero runs forever.
	idleRounds int
}

func NewExporter(
	source evolution.ChainSource,
	repository repository.ChainRepository,
	queue queue.Queue,
	stateManager state.StateManager,
	saveInterval int,
	minIdleTime int,
	maxRetries int,
) *Exporter {
	return &Exporter{
		source:       source,
		repository:   repository,
		queue:        queue,
		stateManager: stateManager,
		saveInterval: max(1, saveInterval),
		minIdleTime:  time.Duration(max(1, minIdleTime)) * time.Second,
		maxRetries:   maxRetries,
	}
}

// StopWhenIdle makes workers return once their stream stayed empty for
// rounds consecutive reads.
func (e *Exporter) StopWhenIdle(rounds int) {
	e.idleRounds = rounds
}

// EnqueueChains adds one export task per chain id in [from, to]. Enqueueing
// resumes after the last id recorded by a previous run over the same range.
func (e *Exporter) EnqueueChains(ctx context.Context, from, to int) (int, error) {
	last, err := e.stateManager.GetLastEnqueuedChain(ctx, from, to)
	if err != nil {
		return 0, err
	}

	start := max(from, 1)
	if last >= start {
		start = last + 1
	}
	if start > to {
		log.Infof("✅ Chains %d..%d already enqueued", from, to)
		return 0, nil
	}
	if start != from {
		log.Infof("🔄 Continue from chain %d", start)
	}

	count := 0
	for chainID := start; chainID <= to; chainID++ {
		if _, err := e.queue.AddTask(ctx, &task.ChainExportTask{ChainID: chainID}); err != nil {
			return count, fmt.Errorf("failed to enqueue chain %d: %w", chainID, err)
		}
		count++

		if count%e.saveInterval == 0 {
			if err := e.stateManager.SetLastEnqueuedChain(ctx, from, to, chainID); err != nil {
				log.Warnf("⚠️ Failed to save progress at chain %d: %v", chainID, err)
			}
		}
	}

	if err := e.stateManager.SetLastEnqueuedChain(ctx, from, to, to); err != nil {
		return count, err
	}

	log.Infof("✅ Enqueued %d chains (%d..%d)", count, start, to)
	return count, nil
}

// RunWorkers blocks until ctx is done, or until every worker went idle when
// StopWhenIdle is set.
func (e *Exporter) RunWorkers(ctx context.Context, numWorkers int) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var workers, claimers sync.WaitGroup

	e.runWorkersForStream(runCtx, &workers, &claimers, max(1, numWorkers), e.queue.StreamName(task.TypeChainExport), "main")
	e.runWorkersForStream(runCtx, &workers, &claimers, max(1, numWorkers/2), e.queue.StreamName(task.TypeChainRetry), "retry")

	workers.Wait()
	cancel()
	claimers.Wait()

	return ctx.Err()
}

func (e *Exporter) runWorkersForStream(ctx context.Context, workers, claimers *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	claimers.Add(1)
	go func() {
		defer claimers.Done()
		ticker := time.NewTicker(e.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s-%d", workerType, time.Now().UnixNano())
				claimed, err := e.queue.AutoClaim(ctx, consumer, streamName, e.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimed) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimed), workerType)
				}
				for _, msg := range claimed {
					if err := e.processMessage(ctx, &msg); err != nil {
						log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		workers.Add(1)
		go func(workerID int) {
			defer workers.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)

			idle := 0
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
				}

				msg, err := e.queue.GetTask(ctx, consumer, streamName)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
					continue
				}

				if msg == nil {
					idle++
					if e.idleRounds > 0 && idle >= e.idleRounds {
						log.Infof("🛑 %s worker %d idle, stopping", workerType, workerID)
						return
					}
					continue
				}
				idle = 0

				if err := e.processMessage(ctx, msg); err != nil {
					log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
				}
			}
		}(i + 1)
	}
}

func (e *Exporter) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return fmt.Errorf("invalid task type in message %s", msg.ID)
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return fmt.Errorf("invalid task data in message %s", msg.ID)
	}

	switch taskType {
	case task.TypeChainExport:
		exportTask, err := task.UnmarshalTask[*task.ChainExportTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal chain export task: %w", err)
		}

		if err := e.exportChain(ctx, exportTask.ChainID); err != nil {
			retryTask := &task.ChainRetryTask{
				ChainID: exportTask.ChainID,
				Error:   err.Error(),
			}
			if _, addErr := e.queue.AddTask(ctx, retryTask); addErr != nil {
				return fmt.Errorf("failed to add retry task for chain %d: %w", exportTask.ChainID, addErr)
			}
			log.Warnf("🔄 Added chain %d to retry queue due to error: %v", exportTask.ChainID, err)
		}

	case task.TypeChainRetry:
		retryTask, err := task.UnmarshalTask[*task.ChainRetryTask]([]byte(taskData))
		if err != nil {
			return fmt.Errorf("failed to unmarshal chain retry task: %w", err)
		}

		if err := e.retryChain(ctx, retryTask); err != nil {
			return fmt.Errorf("failed to retry chain: %w", err)
		}

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	if err := e.queue.AckTask(ctx, e.queue.StreamName(taskType), msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}

// exportChain fetches, flattens and stores one chain. Missing ids are gaps in
// PokeAPI numbering and count as done.
func (e *Exporter) exportChain(ctx context.Context, chainID int) error {
	chain, err := e.source.GetEvolutionChain(ctx, chainID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			log.Debugf("Chain %d does not exist, skipping", chainID)
			return nil
		}
		return err
	}

	stages := evolution.Flatten(chain)
	if len(stages) == 0 {
		log.Warnf("⚠️ Chain %d has no stages, skipping", chainID)
		return nil
	}

	if err := e.repository.SaveChain(ctx, chainID, stages); err != nil {
		return err
	}

	log.Debugf("Stored chain %d (%s, %d stages)", chainID, stages[0].Name, len(stages))
	return nil
}

func (e *Exporter) retryChain(ctx context.Context, retryTask *task.ChainRetryTask) error {
	retryTask.RetryCount++

	log.Infof("🔄 Retrying chain %d (attempt %d)", retryTask.ChainID, retryTask.RetryCount)

	err := e.exportChain(ctx, retryTask.ChainID)
	if err == nil {
		log.Infof("✅ Recovered chain %d after %d attempts", retryTask.ChainID, retryTask.RetryCount)
		return nil
	}

	if e.maxRetries > 0 && retryTask.RetryCount >= e.maxRetries {
		log.Errorf("❌ Giving up on chain %d after %d attempts: %v", retryTask.ChainID, retryTask.RetryCount, err)
		return nil
	}

	next := &task.ChainRetryTask{
		ChainID:    retryTask.ChainID,
		RetryCount: retryTask.RetryCount,
		Error:      err.Error(),
	}
	if _, addErr := e.queue.AddTask(ctx, next); addErr != nil {
		return addErr
	}

	log.Warnf("🔄 Chain %d failed again, will retry (attempt %d): %v", retryTask.ChainID, retryTask.RetryCount, err)
	return nil
}
