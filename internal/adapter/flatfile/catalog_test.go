package flatfile

import (
	"context"
	"testing"
	"testing/fstest"

	"webstore/data"
	"webstore/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog() *Catalog {
	return NewCatalog(NewStore(data.FS, nil))
}

func TestCatalog_Groups(t *testing.T) {
	groups, err := seedCatalog().Groups(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "Books", "2": "Movies"}, groups)
}

func TestCatalog_GroupsMissing(t *testing.T) {
	c := NewCatalog(NewStore(fstest.MapFS{}, nil))
	_, err := c.Groups(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_GroupsEmpty(t *testing.T) {
	c := NewCatalog(NewStore(fstest.MapFS{GroupsResource: {Data: nil}}, nil))
	groups, err := c.Groups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestCatalog_Products(t *testing.T) {
	c := seedCatalog()
	ctx := context.Background()

	books, err := c.Products(ctx, 1)
	require.NoError(t, err)
	require.Len(t, books, 35)
	assert.Equal(t, []string{"2001", "1", "Kalevala", "3.95"}, books[0].Record()[:4])

	for _, gid := range []int{1, 2} {
		products, err := c.Products(ctx, gid)
		require.NoError(t, err)
		for _, p := range products {
			assert.Equal(t, gid, p.GroupID)
		}
	}
}

func TestCatalog_ProductsUnknownGroup(t *testing.T) {
	_, err := seedCatalog().Products(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_Product(t *testing.T) {
	c := seedCatalog()
	ctx := context.Background()

	p, err := c.Product(ctx, 2, 49)
	require.NoError(t, err)
	assert.Equal(t, "Once Upon a Time in the West", p.Title)
	assert.Len(t, p.Record(), 8)

	_, err = c.Product(ctx, 2, 1000)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.Product(ctx, 5, 49)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_Idempotent(t *testing.T) {
	c := seedCatalog()
	ctx := context.Background()

	first, err := c.Products(ctx, 2)
	require.NoError(t, err)
	second, err := c.Products(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCatalog_MalformedIsNotNotFound(t *testing.T) {
	c := NewCatalog(NewStore(fstest.MapFS{
		"pg-3-products.csv": {Data: []byte("x\t3\tTitle\t1.00\tA\t2000\tFI\tG\n")},
	}, nil))

	_, err := c.Products(context.Background(), 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
