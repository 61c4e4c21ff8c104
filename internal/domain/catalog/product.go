package catalog

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is the read model for items served by the upstream catalog feed.
// Products are not created or edited here; they are fetched, cached, and browsed.
type Product struct {
	ID          string
	Title       string
	Price       decimal.Decimal
	Image       string
	Description string
	Category    string
	CategoryID  string
}

// Provider fetches the full product feed from the upstream catalog source
type Provider interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// MatchesSearch reports whether the product title contains the term,
// case-insensitively. An empty term matches everything.
func (p Product) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), strings.ToLower(term))
}
