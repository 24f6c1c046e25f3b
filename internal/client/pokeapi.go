package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"pokedex/explorer/internal/config"
	"pokedex/explorer/internal/domain"
	"pokedex/explorer/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

var (
	ErrNotFound    = errors.New("resource not found")
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

type PokeAPIClient interface {
	GetPokemonList(ctx context.Context, offset, limit int) (*domain.PokemonListPage, error)
	GetPokemon(ctx context.Context, idOrName string) (*domain.Pokemon, error)
	GetSpecies(ctx context.Context, idOrName string) (*domain.Species, error)
	GetEvolutionChain(ctx context.Context, chainID int) (*domain.EvolutionChain, error)
}

type pokeAPIClient struct {
	rl            ratelimit.Limiter
	config        config.PokeAPIConfig
	baseURL       string
	httpClient    *resty.Client
	proxySupplier proxy.ProxySupplier

	// Circuit breaker for HTTP 429 responses
	circuitBreakerMutex sync.RWMutex
	rateLimitedUntil    time.Time
	circuitBreakerDelay time.Duration
}

func NewPokeAPIClient(cfg config.PokeAPIConfig, proxySupplier proxy.ProxySupplier) PokeAPIClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Duration(cfg.RetryWait)*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &pokeAPIClient{
		rl:                  rl,
		config:              cfg,
		baseURL:             strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:          client,
		proxySupplier:       proxySupplier,
		circuitBreakerDelay: time.Duration(cfg.CircuitBreakerDelay) * time.Second,
	}
}

func (c *pokeAPIClient) GetPokemonList(ctx context.Context, offset, limit int) (*domain.PokemonListPage, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))

	var page domain.PokemonListPage
	if err := c.fetchJSON(ctx, "/pokemon?"+query.Encode(), &page); err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon list: %w", err)
	}

	log.Debugf("Fetched pokemon list offset=%d limit=%d with %d results", offset, limit, len(page.Results))
	return &page, nil
}

func (c *pokeAPIClient) GetPokemon(ctx context.Context, idOrName string) (*domain.Pokemon, error) {
	var pokemon domain.Pokemon
	if err := c.fetchJSON(ctx, "/pokemon/"+normalizeKey(idOrName), &pokemon); err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon %s: %w", idOrName, err)
	}
	return &pokemon, nil
}

func (c *pokeAPIClient) GetSpecies(ctx context.Context, idOrName string) (*domain.Species, error) {
	var species domain.Species
	if err := c.fetchJSON(ctx, "/pokemon-species/"+normalizeKey(idOrName), &species); err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon species %s: %w", idOrName, err)
	}
	return &species, nil
}

func (c *pokeAPIClient) GetEvolutionChain(ctx context.Context, chainID int) (*domain.EvolutionChain, error) {
	var chain domain.EvolutionChain
	if err := c.fetchJSON(ctx, fmt.Sprintf("/evolution-chain/%d", chainID), &chain); err != nil {
		return nil, fmt.Errorf("failed to fetch evolution chain %d: %w", chainID, err)
	}
	return &chain, nil
}

// PokeAPI keys are lowercase; names typed by users are not.
func normalizeKey(idOrName string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(idOrName)))
}

func (c *pokeAPIClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.rateLimitedUntil)
	wasTriggered := !c.rateLimitedUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		if !c.rateLimitedUntil.IsZero() && now.After(c.rateLimitedUntil) {
			c.rateLimitedUntil = time.Time{}
			log.Infof("✅ Circuit breaker automatically re-enabled - requests are now allowed")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *pokeAPIClient) triggerCircuitBreaker() {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.rateLimitedUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Circuit breaker activated! All requests disabled until %v (%v)",
		c.rateLimitedUntil.Format("15:04:05"), c.circuitBreakerDelay)
}

func (c *pokeAPIClient) getRemainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.rateLimitedUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (c *pokeAPIClient) fetchJSON(ctx context.Context, path string, out any) error {
	body, err := c.fetch(ctx, c.baseURL+path)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}

func (c *pokeAPIClient) fetch(ctx context.Context, rawURL string) (string, error) {
	if c.isCircuitBreakerOpen() {
		remaining := c.getRemainingCircuitBreakerTime()
		log.Debugf("🚫 Request blocked by circuit breaker. Remaining time: %v", remaining.Round(time.Second))
		return "", fmt.Errorf("%w: requests disabled for %v more", ErrCircuitOpen, remaining.Round(time.Second))
	}

	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		log.Warnf("🚫 Rate limit exceeded for URL: %s", rawURL)
		return c.retryWithNextProxy(ctx, rawURL)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return "", fmt.Errorf("%w: %s", ErrNotFound, rawURL)
	}

	if resp.IsError() {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return resp.String(), nil
}

func (c *pokeAPIClient) retryWithNextProxy(ctx context.Context, rawURL string) (string, error) {
	// Switching only helps when there is another proxy to switch to
	if c.proxySupplier != nil && c.proxySupplier.Len() > 1 {
		if newProxy := c.proxySupplier.Get(); newProxy != "" {
			log.Infof("🔄 Switching to new proxy: %s", newProxy)
			c.httpClient.SetProxy(newProxy)

			retryResp, retryErr := c.httpClient.R().
				SetContext(ctx).
				Get(rawURL)

			if retryErr == nil && !retryResp.IsError() {
				log.Infof("✅ Retry successful with new proxy")
				return retryResp.String(), nil
			}
		}
	}

	c.triggerCircuitBreaker()
	return "", fmt.Errorf("%w: rate limited by %s", ErrCircuitOpen, c.baseURL)
}
