package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/minibookstore/internal/domain/cart"
)

func TestCartStore_ConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()
	svc := cart.NewService(store)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, "s1", cart.Line{BookID: 7, Title: "Dune", Price: decimal.NewFromInt(10), Quantity: 1})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	lines, err := svc.GetAll(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, n, lines[0].Quantity)
}

func TestCartStore_IsolationAndCopies(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()

	c, err := store.Mutate(ctx, "a", func(c *cart.Cart) error {
		return c.Add(cart.Line{BookID: 1, Quantity: 2})
	})
	require.NoError(t, err)

	// 修改返回值不影响存储
	c.Lines[0].Quantity = 99
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Lines[0].Quantity)

	other, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)
}

func TestCartStore_MutateErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	store := NewCartStore()

	_, err := store.Mutate(ctx, "a", func(c *cart.Cart) error {
		return c.Add(cart.Line{BookID: 1, Quantity: 1})
	})
	require.NoError(t, err)

	_, err = store.Mutate(ctx, "a", func(c *cart.Cart) error {
		c.Clear()
		return cart.ErrDuplicateLine
	})
	assert.ErrorIs(t, err, cart.ErrDuplicateLine)

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1)
}

func TestCartStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCartStore().Mutate(ctx, "a", func(c *cart.Cart) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
