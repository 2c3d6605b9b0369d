package usecase

import (
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"travelbot/internal/domain/repository"
)

// DefaultChainCapacity bounds the pipeline cache. Eight distinct
// (system prompt, model, temperature) configurations cover every
// combination the service is expected to see at once.
const DefaultChainCapacity = 8

type chainKey struct {
	systemPrompt string
	model        string
	temperature  float64
}

// CacheStats is a snapshot of cache efficiency counters.
type CacheStats struct {
	Hits     int `json:"hits"`
	Misses   int `json:"misses"`
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
}

// ChainCache memoizes built pipelines keyed by their configuration.
// Construction is delegated to the injected factory; eviction is LRU.
// The mutex is held across lookup and build so concurrent misses on
// the same key do not duplicate credential validation. Construction
// is local (no network), so nothing suspends under the lock.
type ChainCache struct {
	mu       sync.Mutex
	entries  *lru.Cache[chainKey, repository.Pipeline]
	factory  repository.PipelineFactory
	capacity int
	hits     int
	misses   int
	log      *slog.Logger
}

// NewChainCache returns a cache of at most capacity pipelines.
func NewChainCache(factory repository.PipelineFactory, capacity int, log *slog.Logger) *ChainCache {
	if capacity <= 0 {
		capacity = DefaultChainCapacity
	}
	entries, _ := lru.New[chainKey, repository.Pipeline](capacity)
	return &ChainCache{
		entries:  entries,
		factory:  factory,
		capacity: capacity,
		log:      log,
	}
}

// GetOrBuild returns the cached pipeline for the configuration,
// constructing and caching one on a miss. Equal inputs yield the same
// instance while the entry survives eviction. Factory errors are
// returned as-is and nothing is cached for the failed key.
func (c *ChainCache) GetOrBuild(systemPrompt, model string, temperature float64) (repository.Pipeline, error) {
	key := chainKey{systemPrompt: systemPrompt, model: model, temperature: temperature}

	c.mu.Lock()
	defer c.mu.Unlock()

	if pipeline, ok := c.entries.Get(key); ok {
		c.hits++
		return pipeline, nil
	}

	c.misses++
	c.log.Debug("chain cache build",
		"model", model,
		"temperature", temperature,
		"prompt_len", len(systemPrompt),
	)
	pipeline, err := c.factory.Build(systemPrompt, model, temperature)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, pipeline)
	return pipeline, nil
}

// Clear drops every entry. Use on configuration rotation (new system
// prompt, key rotation) or in tests.
func (c *ChainCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
	c.hits = 0
	c.misses = 0
}

// Stats reports hit/miss counters and current occupancy.
func (c *ChainCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Hits:     c.hits,
		Misses:   c.misses,
		Size:     c.entries.Len(),
		Capacity: c.capacity,
	}
}
