package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"travelbot/internal/domain/repository"
)

type fakePipeline struct {
	id           int
	reply        string
	err          error
	invokes      int
	lastQuestion string
	lastContext  string
}

func (p *fakePipeline) Invoke(_ context.Context, question, tripContext string) (string, error) {
	p.invokes++
	p.lastQuestion = question
	p.lastContext = tripContext
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

type fakeFactory struct {
	builds int
	err    error
	reply  string
	invErr error
	last   *fakePipeline
}

func (f *fakeFactory) Build(_, _ string, _ float64) (repository.Pipeline, error) {
	f.builds++
	if f.err != nil {
		return nil, f.err
	}
	f.last = &fakePipeline{id: f.builds, reply: f.reply, err: f.invErr}
	return f.last, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChainCacheReusesInstance(t *testing.T) {
	factory := &fakeFactory{reply: "ok"}
	cache := NewChainCache(factory, DefaultChainCapacity, discardLogger())

	first, err := cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	require.NoError(t, err)
	second, err := cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	require.NoError(t, err)

	require.Same(t, first, second)
	require.Equal(t, 1, factory.builds)
}

func TestChainCacheDistinctKeys(t *testing.T) {
	factory := &fakeFactory{reply: "ok"}
	cache := NewChainCache(factory, DefaultChainCapacity, discardLogger())

	a, err := cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	require.NoError(t, err)
	b, err := cache.GetOrBuild("prompt", "gpt-4o-mini", 0.7)
	require.NoError(t, err)
	c, err := cache.GetOrBuild("other prompt", "gpt-4o-mini", 0.2)
	require.NoError(t, err)

	require.NotSame(t, a, b)
	require.NotSame(t, a, c)
	require.Equal(t, 3, factory.builds)
}

func TestChainCacheEvictsLeastRecentlyUsed(t *testing.T) {
	factory := &fakeFactory{reply: "ok"}
	cache := NewChainCache(factory, 8, discardLogger())

	for i := 0; i < 8; i++ {
		_, err := cache.GetOrBuild("prompt", fmt.Sprintf("model-%d", i), 0.2)
		require.NoError(t, err)
	}
	require.Equal(t, 8, factory.builds)

	// Touch model-1..model-7 so model-0 becomes least recently used.
	for i := 1; i < 8; i++ {
		_, err := cache.GetOrBuild("prompt", fmt.Sprintf("model-%d", i), 0.2)
		require.NoError(t, err)
	}
	require.Equal(t, 8, factory.builds)

	// Ninth distinct key evicts exactly model-0.
	_, err := cache.GetOrBuild("prompt", "model-8", 0.2)
	require.NoError(t, err)
	require.Equal(t, 9, factory.builds)

	// The seven most recently used entries plus the new one are still
	// served without a rebuild.
	for i := 1; i < 9; i++ {
		_, err := cache.GetOrBuild("prompt", fmt.Sprintf("model-%d", i), 0.2)
		require.NoError(t, err)
	}
	require.Equal(t, 9, factory.builds)

	// The evicted entry needs a rebuild.
	_, err = cache.GetOrBuild("prompt", "model-0", 0.2)
	require.NoError(t, err)
	require.Equal(t, 10, factory.builds)
}

func TestChainCacheClear(t *testing.T) {
	factory := &fakeFactory{reply: "ok"}
	cache := NewChainCache(factory, 8, discardLogger())

	_, err := cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	require.NoError(t, err)
	cache.Clear()

	stats := cache.Stats()
	require.Zero(t, stats.Size)
	require.Zero(t, stats.Hits)
	require.Zero(t, stats.Misses)

	_, err = cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	require.NoError(t, err)
	require.Equal(t, 2, factory.builds)
}

func TestChainCacheStats(t *testing.T) {
	factory := &fakeFactory{reply: "ok"}
	cache := NewChainCache(factory, 8, discardLogger())

	_, _ = cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	_, _ = cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	_, _ = cache.GetOrBuild("prompt", "gpt-4o-mini", 0.7)

	stats := cache.Stats()
	require.Equal(t, 1, stats.Hits)
	require.Equal(t, 2, stats.Misses)
	require.Equal(t, 2, stats.Size)
	require.Equal(t, 8, stats.Capacity)
}

func TestChainCacheFactoryErrorNotCached(t *testing.T) {
	factory := &fakeFactory{err: fmt.Errorf("no credential")}
	cache := NewChainCache(factory, 8, discardLogger())

	_, err := cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	require.Error(t, err)
	_, err = cache.GetOrBuild("prompt", "gpt-4o-mini", 0.2)
	require.Error(t, err)

	// A failed build must not occupy a slot.
	require.Zero(t, cache.Stats().Size)
	require.Equal(t, 2, factory.builds)
}
