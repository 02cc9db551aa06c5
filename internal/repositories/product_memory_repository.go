package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"katalog/internal/models"
)

// MemoryProductRepository is an in-memory implementation of
// ProductRepository. It backs the service when no database is configured
// and keeps the integration tests self-contained. Identifiers are hex
// ObjectIDs so id handling matches the Mongo implementation.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[string]models.Product),
	}
}

func matches(p models.Product, q ListQuery) bool {
	if !p.IsActive {
		return false
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Brand != "" && !strings.Contains(strings.ToLower(p.Brand), strings.ToLower(q.Brand)) {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	return true
}

func less(a, b models.Product, field string) bool {
	switch field {
	case "name":
		return a.Name < b.Name
	case "brand":
		return a.Brand < b.Brand
	case "category":
		return a.Category < b.Category
	case "price":
		return a.Price < b.Price
	case "rating":
		return a.Rating < b.Rating
	case "stock":
		return a.Stock < b.Stock
	case "reviews":
		return a.Reviews < b.Reviews
	case "updatedAt":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default: // createdAt
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// List filters, sorts and paginates in memory, mirroring the query the
// Mongo implementation sends to the server.
func (r *MemoryProductRepository) List(ctx context.Context, q ListQuery) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Product{}
	for _, p := range r.products {
		if matches(p, q) {
			matched = append(matched, p)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if q.SortOrder == OrderDesc {
			return less(matched[j], matched[i], q.SortField)
		}
		return less(matched[i], matched[j], q.SortField)
	})

	total := int64(len(matched))
	start := q.Skip
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := start + q.Limit
	if q.Limit <= 0 || end > total {
		end = total
	}
	return matched[start:end], total, nil
}

// GetByID returns a product by its hex identifier.
func (r *MemoryProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &product, nil
}

// Create adds a new product, assigning an identifier and timestamps.
func (r *MemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID.Hex()] = *product
	return nil
}

// Update replaces every user-settable field of an existing product and
// returns the stored result. CreatedAt is preserved.
func (r *MemoryProductRepository) Update(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[id]
	if !ok {
		return nil, ErrNotFound
	}

	updated := *product
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.products[id] = updated
	return &updated, nil
}

// Delete removes a product by its identifier.
func (r *MemoryProductRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// DistinctCategories returns the sorted set of categories present.
func (r *MemoryProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]bool{}
	categories := []string{}
	for _, p := range r.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}
