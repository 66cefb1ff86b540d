package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

type stubCatalog struct {
	products   []domain.Product
	categories []string
	err        error
}

func (s stubCatalog) Products(context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s stubCatalog) ProductsByCategory(_ context.Context, category string) ([]domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s stubCatalog) Product(_ context.Context, id int) (domain.Product, error) {
	if s.err != nil {
		return domain.Product{}, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrProductNotFound)
}

func (s stubCatalog) Categories(context.Context) ([]string, error) {
	return s.categories, s.err
}

func TestQuery_InitialStateIsLoading(t *testing.T) {
	q := CategoriesQuery(stubCatalog{})
	assert.Equal(t, StatusLoading, q.Result().Status)
}

func TestQuery_Ready(t *testing.T) {
	catalog := stubCatalog{products: []domain.Product{
		{ID: 1, Title: "A", Category: "jewelery"},
		{ID: 2, Title: "B", Category: "electronics"},
	}}

	res := ProductsQuery(catalog, "jewelery").Load(context.Background())
	require.Equal(t, StatusReady, res.Status)
	require.Len(t, res.Data, 1)
	assert.Equal(t, 1, res.Data[0].ID)
	assert.Empty(t, res.Message)

	all := ProductsQuery(catalog, "").Load(context.Background())
	assert.Len(t, all.Data, 2)
}

func TestQuery_FailureMessages(t *testing.T) {
	down := stubCatalog{err: domain.ErrCatalogUnavailable}

	products := ProductsQuery(down, "").Load(context.Background())
	assert.Equal(t, StatusFailed, products.Status)
	assert.Equal(t, MessageProductsFailed, products.Message)
	assert.Nil(t, products.Data)

	categories := CategoriesQuery(down).Load(context.Background())
	assert.Equal(t, MessageCategoriesFailed, categories.Message)

	product := ProductQuery(stubCatalog{}, 42).Load(context.Background())
	assert.Equal(t, StatusFailed, product.Status)
	assert.Equal(t, MessageProductNotFound, product.Message)
	assert.ErrorIs(t, product.Err, domain.ErrProductNotFound)
}

func TestQuery_StaleGenerationIsDiscarded(t *testing.T) {
	firstStarted := make(chan struct{})
	var calls int
	q := NewQuery(func(ctx context.Context) (string, error) {
		calls++
		if calls == 1 {
			close(firstStarted)
			<-ctx.Done()
			return "stale", ctx.Err()
		}
		return "fresh", nil
	}, nil)

	done := make(chan Result[string])
	go func() {
		done <- q.Load(context.Background())
	}()
	<-firstStarted

	latest := q.Load(context.Background())
	require.Equal(t, StatusReady, latest.Status)
	assert.Equal(t, "fresh", latest.Data)

	stale := <-done
	assert.NotEqual(t, StatusFailed, stale.Status, "superseded load must not surface its own failure")
	assert.NotEqual(t, "stale", stale.Data)
	assert.Equal(t, "fresh", q.Result().Data)
}

func TestMessageFor(t *testing.T) {
	assert.Equal(t, MessageProductNotFound, MessageFor(fmt.Errorf("x: %w", domain.ErrProductNotFound)))
	assert.Equal(t, MessageProductsFailed, MessageFor(errors.New("boom")))
}
