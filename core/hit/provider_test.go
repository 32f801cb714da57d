package hit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedProvider_Lookups(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "fwd.tsv")
	require.NoError(t, os.WriteFile(fn, []byte("Q1\tS1\t1e-10\nQ2\tS2\t1e-2\n"), 0o644))

	p, err := NewCachedProvider(fn, 1e-5)
	require.NoError(t, err)

	h, ok, err := p.BestHit(context.Background(), "Q1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "S1", h.Subject)

	// Q2's only hit is above the ceiling: no hit, no error.
	_, ok, err = p.BestHit(context.Background(), "Q2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCachedProvider_MalformedCacheIsFatal(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "bad.tsv")
	require.NoError(t, os.WriteFile(fn, []byte("Q1\tS1\tnot-a-number\n"), 0o644))

	_, err := NewCachedProvider(fn, 1e-5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderInit))
	assert.True(t, errors.Is(err, ErrMalformedCache))
}

func TestOnTheFlyProvider_MemoizesSearches(t *testing.T) {
	calls := 0
	p := NewOnTheFlyProvider(func(_ context.Context, id string) ([]Hit, error) {
		calls++
		return []Hit{{Query: id, Subject: "S1", Evalue: 1e-12}}, nil
	}, 1e-5, 0, 0)

	for i := 0; i < 3; i++ {
		h, ok, err := p.BestHit(context.Background(), "Q1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "S1", h.Subject)
	}
	assert.Equal(t, 1, calls, "search must run once per id")
}

func TestOnTheFlyProvider_FailureIsNoHitUntilLimit(t *testing.T) {
	p := NewOnTheFlyProvider(func(_ context.Context, id string) ([]Hit, error) {
		return nil, fmt.Errorf("tool exited 1")
	}, 1e-5, 0, 3)

	// First two failures: absorbed as "no hit" for distinct ids.
	for _, id := range []string{"Q1", "Q2"} {
		_, ok, err := p.BestHit(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	// Third consecutive failure escalates.
	_, _, err := p.BestHit(context.Background(), "Q3")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProviderInit))

	// And the provider stays dead.
	_, _, err = p.BestHit(context.Background(), "Q4")
	assert.True(t, errors.Is(err, ErrProviderInit))
}

func TestOnTheFlyProvider_SuccessResetsFailureCount(t *testing.T) {
	n := 0
	p := NewOnTheFlyProvider(func(_ context.Context, id string) ([]Hit, error) {
		n++
		if n%2 == 1 {
			return nil, fmt.Errorf("flaky")
		}
		return []Hit{{Query: id, Subject: "S", Evalue: 1e-9}}, nil
	}, 1e-5, 0, 2)

	for i := 0; i < 6; i++ {
		_, _, err := p.BestHit(context.Background(), fmt.Sprintf("Q%d", i))
		require.NoError(t, err, "alternating failures must never escalate with limit 2")
	}
}

func TestOnTheFlyProvider_AppliesCeiling(t *testing.T) {
	p := NewOnTheFlyProvider(func(_ context.Context, id string) ([]Hit, error) {
		return []Hit{{Query: id, Subject: "S1", Evalue: 0.1}}, nil
	}, 1e-5, 0, 0)
	_, ok, err := p.BestHit(context.Background(), "Q1")
	require.NoError(t, err)
	assert.False(t, ok)
}
