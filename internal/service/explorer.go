package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pokedex/explorer/internal/catalog"
	"pokedex/explorer/internal/client"
	"pokedex/explorer/internal/domain"
	"pokedex/explorer/internal/evolution"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var (
	ErrEmptySearchTerm = errors.New("search term is empty")
	ErrPokemonNotFound = errors.New("pokemon not found")
)

// SearchResult is everything shown for one searched pokemon. EvolutionErr is
// set when the evolution panel could not be loaded; the rest stays usable.
type SearchResult struct {
	Pokemon        *domain.Pokemon         `json:"pokemon"`
	Species        *domain.Species         `json:"species"`
	Evolution      []domain.EvolutionStage `json:"evolution"`
	MegaEvolutions []domain.MegaEvolution  `json:"mega_evolutions,omitempty"`
	EvolutionErr   error                   `json:"-"`
}

type Explorer struct {
	client     client.PokeAPIClient
	chains     *evolution.ChainFetcher
	batchSize  int
	maxWorkers int
}

func NewExplorer(client client.PokeAPIClient, batchSize, maxWorkers int) *Explorer {
	return &Explorer{
		client:     client,
		chains:     evolution.NewChainFetcher(client),
		batchSize:  max(1, batchSize),
		maxWorkers: max(1, maxWorkers),
	}
}

// Search resolves a pokemon by id or name, then its species, then its
// evolution chain. The three lookups run in sequence.
func (e *Explorer) Search(ctx context.Context, term string) (*SearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptySearchTerm
	}

	pokemon, err := e.client.GetPokemon(ctx, term)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrPokemonNotFound, term)
		}
		return nil, fmt.Errorf("failed to search pokemon %q: %w", term, err)
	}

	species, err := e.client.GetSpecies(ctx, speciesKey(pokemon))
	if err != nil {
		return nil, fmt.Errorf("failed to load species for %s: %w", pokemon.Name, err)
	}

	result := &SearchResult{
		Pokemon:        pokemon,
		Species:        species,
		Evolution:      []domain.EvolutionStage{},
		MegaEvolutions: catalog.MegaEvolutionsFor(pokemon.ID),
	}

	stages, err := e.chains.LoadStages(ctx, species)
	if err != nil {
		log.Warnf("⚠️ Evolution data unavailable for %s: %v", pokemon.Name, err)
		result.EvolutionErr = err
		return result, nil
	}
	result.Evolution = stages

	log.Debugf("Search %q resolved to #%d %s with %d evolution stages", term, pokemon.ID, pokemon.Name, len(stages))
	return result, nil
}

// Chain fetches and flattens one evolution chain by id.
func (e *Explorer) Chain(ctx context.Context, chainID int) ([]domain.EvolutionStage, error) {
	chain, err := e.client.GetEvolutionChain(ctx, chainID)
	if err != nil {
		return nil, &evolution.ChainFetchError{ChainID: chainID, Err: err}
	}
	return evolution.Flatten(chain), nil
}

// Regional forms such as raichu-alola have pokemon ids with no species of
// their own, so the species reference wins over the pokemon id.
func speciesKey(p *domain.Pokemon) string {
	if id, err := p.Species.ID(); err == nil {
		return strconv.Itoa(id)
	}
	return strconv.Itoa(p.ID)
}

// ListPage loads one page of the unfiltered list.
func (e *Explorer) ListPage(ctx context.Context, offset, limit int) (*domain.PokemonListPage, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	limit = min(limit, MaxPageLimit)

	page, err := e.client.GetPokemonList(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load pokemon list: %w", err)
	}
	return page, nil
}

// LoadRegion fetches every pokemon of a region. IDs are requested in batches;
// each batch runs concurrently and results keep the region's id order. Any
// failed request fails the whole load.
func (e *Explorer) LoadRegion(ctx context.Context, regionKey string) ([]*domain.Pokemon, error) {
	ids, err := catalog.PokemonIDsByRegion(regionKey)
	if err != nil {
		return nil, err
	}

	results := make([]*domain.Pokemon, len(ids))
	for start := 0; start < len(ids); start += e.batchSize {
		end := min(start+e.batchSize, len(ids))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.maxWorkers)

		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				pokemon, err := e.client.GetPokemon(gctx, strconv.Itoa(ids[i]))
				if err != nil {
					return fmt.Errorf("failed to load pokemon %d: %w", ids[i], err)
				}
				results[i] = pokemon
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("failed to load region %s: %w", regionKey, err)
		}

		log.Debugf("Loaded %d/%d pokemon for region %s", end, len(ids), regionKey)
	}

	log.Infof("✅ Loaded %d pokemon for region %s", len(results), regionKey)
	return results, nil
}
