package repositories

import (
	"context"
	"errors"

	"katalog/internal/models"
)

// ErrNotFound is returned when no product matches the given identifier.
// A malformed identifier is reported the same way: from the client's
// point of view the record does not exist.
var ErrNotFound = errors.New("product not found")

// Sort orders accepted by ListQuery.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListQuery describes a filtered, sorted, paginated product listing.
// All filters are AND-ed together, and every listing is restricted to
// active products. Brand matches case-insensitively as a substring.
type ListQuery struct {
	Category  string
	Brand     string
	MinPrice  *float64
	MaxPrice  *float64
	SortField string
	SortOrder string
	Skip      int64
	Limit     int64
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of matching products plus the total number
	// of documents matching the filter regardless of pagination.
	List(ctx context.Context, q ListQuery) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update replaces every user-settable field of the addressed product
	// and returns the post-update document. CreatedAt is preserved.
	Update(ctx context.Context, id string, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	// DistinctCategories returns the category values actually present,
	// which may be fewer than the fixed enum.
	DistinctCategories(ctx context.Context) ([]string, error)
}
