package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"pokedex/explorer/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrChainNotStored is returned when no export exists for a chain id.
var ErrChainNotStored = errors.New("evolution chain not stored")

type ChainRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveChain(ctx context.Context, chainID int, stages []domain.EvolutionStage) error
	GetChain(ctx context.Context, chainID int) ([]domain.EvolutionStage, error)
}

type chainRepository struct {
	db *pgxpool.Pool
}

func NewChainRepository(db *pgxpool.Pool) ChainRepository {
	return &chainRepository{
		db: db,
	}
}

func (r *chainRepository) EnsureSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS evolution_chains (
		id         INTEGER PRIMARY KEY,
		base_name  TEXT NOT NULL,
		stages     INTEGER NOT NULL,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create evolution_chains table: %w", err)
	}
	return nil
}

func (r *chainRepository) SaveChain(ctx context.Context, chainID int, stages []domain.EvolutionStage) error {
	if len(stages) == 0 {
		return fmt.Errorf("refusing to save empty chain %d", chainID)
	}

	data, err := json.Marshal(stages)
	if err != nil {
		return fmt.Errorf("failed to encode chain %d: %w", chainID, err)
	}

	query := `
	INSERT INTO evolution_chains (id, base_name, stages, data, updated_at)
	VALUES ($1, $2, $3, $4, now())
	ON CONFLICT (id)
	DO UPDATE SET base_name = $2, stages = $3, data = $4, updated_at = now()`
	if _, err := r.db.Exec(ctx, query, chainID, stages[0].Name, len(stages), data); err != nil {
		return fmt.Errorf("failed to save evolution chain %d: %w", chainID, err)
	}

	return nil
}

func (r *chainRepository) GetChain(ctx context.Context, chainID int) ([]domain.EvolutionStage, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `SELECT data FROM evolution_chains WHERE id = $1`, chainID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrChainNotStored, chainID)
		}
		return nil, fmt.Errorf("failed to load evolution chain %d: %w", chainID, err)
	}

	var stages []domain.EvolutionStage
	if err := json.Unmarshal(data, &stages); err != nil {
		return nil, fmt.Errorf("failed to decode evolution chain %d: %w", chainID, err)
	}
	return stages, nil
}
