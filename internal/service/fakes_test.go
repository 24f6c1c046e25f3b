package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"pokedex/explorer/internal/client"
	"pokedex/explorer/internal/domain"
	"pokedex/explorer/internal/domain/task"

	"github.com/redis/go-redis/v9"
)

var errUpstream = errors.New("upstream unavailable")

func speciesURL(id int) string {
	return fmt.Sprintf("https://pokeapi.co/api/v2/pokemon-species/%d/", id)
}

func chainURL(id int) string {
	return fmt.Sprintf("https://pokeapi.co/api/v2/evolution-chain/%d/", id)
}

func node(name string, id int, level *int, children ...*domain.EvolutionNode) *domain.EvolutionNode {
	n := &domain.EvolutionNode{
		Species:   &domain.NamedResource{Name: name, URL: speciesURL(id)},
		EvolvesTo: children,
	}
	if level != nil {
		n.EvolutionDetails = []domain.EvolutionDetail{{
			Trigger:  domain.NamedResource{Name: domain.TriggerLevelUp},
			MinLevel: level,
		}}
	}
	return n
}

func intPtr(v int) *int { return &v }

func charmanderChain() *domain.EvolutionChain {
	return &domain.EvolutionChain{
		ID: 2,
		Chain: node("charmander", 4, nil,
			node("charmeleon", 5, intPtr(16),
				node("charizard", 6, intPtr(36)))),
	}
}

type fakeClient struct {
	mu sync.Mutex

	pokemon map[string]*domain.Pokemon
	species map[string]*domain.Species
	chains  map[int]*domain.EvolutionChain

	// Numeric keys missing from pokemon are answered with a generated entry.
	generate bool
	failKeys map[string]error
	// chainFailures counts down failing GetEvolutionChain calls per id.
	chainFailures map[int]int
	// block holds a pokemon lookup until the channel is closed.
	block   map[string]chan struct{}
	started chan string

	calls      []string
	listOffset int
	listLimit  int
}

func newFakeClient() *fakeClient {
	c := &fakeClient{
		pokemon:       map[string]*domain.Pokemon{},
		species:       map[string]*domain.Species{},
		chains:        map[int]*domain.EvolutionChain{},
		failKeys:      map[string]error{},
		chainFailures: map[int]int{},
		block:         map[string]chan struct{}{},
	}
	c.addPokemon(6, "charizard", 6, 2)
	c.chains[2] = charmanderChain()
	return c
}

func (c *fakeClient) addPokemon(id int, name string, speciesID, chainID int) {
	p := &domain.Pokemon{
		ID:      id,
		Name:    name,
		Species: domain.NamedResource{Name: name, URL: speciesURL(speciesID)},
	}
	c.pokemon[name] = p
	c.pokemon[strconv.Itoa(id)] = p

	s := &domain.Species{ID: speciesID, Name: name}
	if chainID > 0 {
		s.EvolutionChain = &domain.ChainReference{URL: chainURL(chainID)}
	}
	c.species[strconv.Itoa(speciesID)] = s
}

func (c *fakeClient) record(call string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, call)
}

func (c *fakeClient) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

func (c *fakeClient) GetPokemonList(_ context.Context, offset, limit int) (*domain.PokemonListPage, error) {
	c.record("list")
	c.mu.Lock()
	c.listOffset, c.listLimit = offset, limit
	c.mu.Unlock()
	return &domain.PokemonListPage{Count: 1302}, nil
}

func (c *fakeClient) GetPokemon(ctx context.Context, idOrName string) (*domain.Pokemon, error) {
	c.record("pokemon/" + idOrName)

	c.mu.Lock()
	gate := c.block[idOrName]
	started := c.started
	c.mu.Unlock()

	if gate != nil {
		if started != nil {
			started <- idOrName
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err, ok := c.failKeys[idOrName]; ok {
		return nil, err
	}
	if p, ok := c.pokemon[idOrName]; ok {
		return p, nil
	}
	if id, err := strconv.Atoi(idOrName); err == nil && c.generate {
		return &domain.Pokemon{ID: id, Name: "pokemon-" + idOrName}, nil
	}
	return nil, client.ErrNotFound
}

func (c *fakeClient) GetSpecies(_ context.Context, idOrName string) (*domain.Species, error) {
	c.record("species/" + idOrName)
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.species[idOrName]; ok {
		return s, nil
	}
	return nil, client.ErrNotFound
}

func (c *fakeClient) GetEvolutionChain(_ context.Context, chainID int) (*domain.EvolutionChain, error) {
	c.record("chain/" + strconv.Itoa(chainID))
	c.mu.Lock()
	defer c.mu.Unlock()

	if remaining := c.chainFailures[chainID]; remaining != 0 {
		if remaining > 0 {
			c.chainFailures[chainID] = remaining - 1
		}
		return nil, errUpstream
	}
	if chain, ok := c.chains[chainID]; ok {
		return chain, nil
	}
	return nil, client.ErrNotFound
}

type fakeQueue struct {
	mu      sync.Mutex
	streams map[string][]redis.XMessage
	acked   map[string][]string
	nextID  int
	// wait is how long an empty read blocks, like XREADGROUP BLOCK.
	wait time.Duration
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{
		streams: map[string][]redis.XMessage{},
		acked:   map[string][]string{},
	}
}

func (q *fakeQueue) StreamName(taskType string) string {
	return "test:stream:" + taskType
}

func (q *fakeQueue) AddTask(_ context.Context, t task.Task) (string, error) {
	value, err := t.TaskValue()
	if err != nil {
		return "", err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	id := fmt.Sprintf("%d-0", q.nextID)
	stream := q.StreamName(t.TaskType())
	q.streams[stream] = append(q.streams[stream], redis.XMessage{
		ID: id,
		Values: map[string]interface{}{
			"task_type": t.TaskType(),
			"task_data": string(value),
		},
	})
	return id, nil
}

func (q *fakeQueue) GetTask(ctx context.Context, _, stream string) (*redis.XMessage, error) {
	q.mu.Lock()
	if pending := q.streams[stream]; len(pending) > 0 {
		msg := pending[0]
		q.streams[stream] = pending[1:]
		q.mu.Unlock()
		return &msg, nil
	}
	q.mu.Unlock()

	if q.wait > 0 {
		select {
		case <-time.After(q.wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, nil
}

func (q *fakeQueue) AckTask(_ context.Context, stream, msgID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked[stream] = append(q.acked[stream], msgID)
	return nil
}

func (q *fakeQueue) AutoClaim(context.Context, string, string, time.Duration) ([]redis.XMessage, error) {
	return nil, nil
}

func (q *fakeQueue) Messages(taskType string) []redis.XMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]redis.XMessage(nil), q.streams[q.StreamName(taskType)]...)
}

func (q *fakeQueue) Acked(taskType string) []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.acked[q.StreamName(taskType)]...)
}

type fakeRepository struct {
	mu     sync.Mutex
	chains map[int][]domain.EvolutionStage
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{chains: map[int][]domain.EvolutionStage{}}
}

func (r *fakeRepository) EnsureSchema(context.Context) error { return nil }

func (r *fakeRepository) SaveChain(_ context.Context, chainID int, stages []domain.EvolutionStage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[chainID] = stages
	return nil
}

func (r *fakeRepository) GetChain(_ context.Context, chainID int) ([]domain.EvolutionStage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stages, ok := r.chains[chainID]
	if !ok {
		return nil, fmt.Errorf("chain %d not stored", chainID)
	}
	return stages, nil
}

func (r *fakeRepository) Stored() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	return ids
}

type chainRange struct{ from, to int }

type fakeState struct {
	mu       sync.Mutex
	progress map[chainRange]int
	saved    []int
}

func newFakeState() *fakeState {
	return &fakeState{progress: map[chainRange]int{}}
}

func (s *fakeState) GetLastEnqueuedChain(_ context.Context, from, to int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress[chainRange{from, to}], nil
}

func (s *fakeState) SetLastEnqueuedChain(_ context.Context, from, to, chainID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[chainRange{from, to}] = chainID
	s.saved = append(s.saved, chainID)
	return nil
}
