package evolution

import (
	"context"
	"fmt"

	"pokedex/explorer/internal/domain"

	log "github.com/sirupsen/logrus"
)

// ChainSource retrieves evolution chains by id.
type ChainSource interface {
	GetEvolutionChain(ctx context.Context, chainID int) (*domain.EvolutionChain, error)
}

// ChainFetcher resolves the evolution chain referenced by a species. It does
// not retry and does not cache; every call goes to the source.
type ChainFetcher struct {
	source ChainSource
}

func NewChainFetcher(source ChainSource) *ChainFetcher {
	return &ChainFetcher{source: source}
}

// LoadChain returns (nil, nil) when the species carries no chain reference.
func (f *ChainFetcher) LoadChain(ctx context.Context, species *domain.Species) (*domain.EvolutionChain, error) {
	if species == nil || species.EvolutionChain == nil || species.EvolutionChain.URL == "" {
		return nil, nil
	}

	chainID, err := domain.ParseResourceID(species.EvolutionChain.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidChainID, err)
	}

	chain, err := f.source.GetEvolutionChain(ctx, chainID)
	if err != nil {
		return nil, &ChainFetchError{ChainID: chainID, Err: err}
	}

	log.Debugf("Loaded evolution chain %d for %s", chainID, species.Name)
	return chain, nil
}

// LoadStages loads the species' chain and flattens it.
func (f *ChainFetcher) LoadStages(ctx context.Context, species *domain.Species) ([]domain.EvolutionStage, error) {
	chain, err := f.LoadChain(ctx, species)
	if err != nil {
		return nil, err
	}
	return Flatten(chain), nil
}
