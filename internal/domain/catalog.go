package domain

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
)

// ProductGroup is a top-level catalog category, e.g. Books or Movies.
type ProductGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product is a single catalog item. (GroupID, ProductID) is unique.
type Product struct {
	GroupID   int             `json:"pg-id"`
	ProductID int             `json:"p-id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Creator   string          `json:"creator"`
	Year      int             `json:"year"`
	Country   string          `json:"country"`
	Genre     string          `json:"genre"`
}

// Record returns the product in its positional flat-file layout:
// productId, groupId, title, price, creator, year, country, genre.
func (p Product) Record() []string {
	return []string{
		strconv.Itoa(p.ProductID),
		strconv.Itoa(p.GroupID),
		p.Title,
		p.Price.StringFixed(2),
		p.Creator,
		strconv.Itoa(p.Year),
		p.Country,
		p.Genre,
	}
}

// CatalogRepository is the read-only port for catalog lookups.
// Groups is keyed by group id. Products and Product return ErrNotFound when
// the group has no backing resource; Product also when the id is absent.
type CatalogRepository interface {
	Groups(ctx context.Context) (map[string]string, error)
	Products(ctx context.Context, groupID int) ([]Product, error)
	Product(ctx context.Context, groupID, productID int) (Product, error)
}
