package flatfile

import (
	"context"
	"fmt"
	"strconv"

	"webstore/internal/domain"

	"github.com/shopspring/decimal"
)

// GroupsResource is the name of the product group listing.
const GroupsResource = "product-groups.csv"

// ProductsResource returns the resource name holding the products of a group.
func ProductsResource(groupID int) string {
	return fmt.Sprintf("pg-%d-products.csv", groupID)
}

// Catalog implements domain.CatalogRepository on top of a Store.
type Catalog struct {
	store *Store
}

var _ domain.CatalogRepository = (*Catalog)(nil)

// NewCatalog creates a catalog repository.
func NewCatalog(store *Store) *Catalog {
	return &Catalog{store: store}
}

// Groups returns all product groups keyed by id.
func (c *Catalog) Groups(ctx context.Context) (map[string]string, error) {
	rows, found, err := c.store.Load(GroupsResource)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.Errorf(domain.ErrNotFound, "Product groups not found")
	}

	groups := make(map[string]string, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%s row %d: expected 2 fields, got %d", GroupsResource, i+1, len(row))
		}
		groups[row[0]] = row[1]
	}
	return groups, nil
}

// Products returns the products of a group in file order.
func (c *Catalog) Products(ctx context.Context, groupID int) ([]domain.Product, error) {
	name := ProductsResource(groupID)
	rows, found, err := c.store.Load(name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.Errorf(domain.ErrNotFound, "Product group not found: %d", groupID)
	}

	products := make([]domain.Product, 0, len(rows))
	for i, row := range rows {
		p, err := parseProduct(row)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, i+1, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// Product returns a single product of a group.
func (c *Catalog) Product(ctx context.Context, groupID, productID int) (domain.Product, error) {
	products, err := c.Products(ctx, groupID)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range products {
		if p.ProductID == productID {
			return p, nil
		}
	}
	return domain.Product{}, domain.Errorf(domain.ErrNotFound, "Product not found: %d/%d", groupID, productID)
}

func parseProduct(row Row) (domain.Product, error) {
	if len(row) < 8 {
		return domain.Product{}, fmt.Errorf("expected 8 fields, got %d", len(row))
	}
	productID, err := strconv.Atoi(row[0])
	if err != nil {
		return domain.Product{}, fmt.Errorf("product id: %w", err)
	}
	groupID, err := strconv.Atoi(row[1])
	if err != nil {
		return domain.Product{}, fmt.Errorf("group id: %w", err)
	}
	price, err := decimal.NewFromString(row[3])
	if err != nil {
		return domain.Product{}, fmt.Errorf("price: %w", err)
	}
	year, err := strconv.Atoi(row[5])
	if err != nil {
		return domain.Product{}, fmt.Errorf("year: %w", err)
	}
	return domain.Product{
		GroupID:   groupID,
		ProductID: productID,
		Title:     row[2],
		Price:     price,
		Creator:   row[4],
		Year:      year,
		Country:   row[6],
		Genre:     row[7],
	}, nil
}
