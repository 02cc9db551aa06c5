package services

import (
	"context"
	"math"

	"go.uber.org/zap"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

// Defaults and bounds for product listings. Limit is capped so a single
// request cannot page the whole collection into memory.
const (
	DefaultSort  = "createdAt"
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Catalog mutation event actions.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher publishes catalog mutation events. Implemented by
// rabbitmq.Client; a nil publisher disables publishing.
type EventPublisher interface {
	PublishProductEvent(action, productID, name string) error
}

// ListParams are the raw listing parameters taken from the request.
// Zero values select the defaults.
type ListParams struct {
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Order    string
	Page     int
	Limit    int
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// ListProducts applies listing defaults, runs the filtered query and
// assembles the page with its pagination metadata.
func (s *ProductService) ListProducts(ctx context.Context, p ListParams) (*models.ProductPage, error) {
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	if p.Order == "" {
		p.Order = repositories.OrderDesc
	}
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	// The skip multiplication must not overflow int64 for an absurd page
	// value; such a page lands past the end and yields an empty page.
	limit := int64(p.Limit)
	page := int64(p.Page - 1)
	if page > math.MaxInt64/limit {
		page = math.MaxInt64 / limit
	}

	query := repositories.ListQuery{
		Category:  p.Category,
		Brand:     p.Brand,
		MinPrice:  p.MinPrice,
		MaxPrice:  p.MaxPrice,
		SortField: p.Sort,
		SortOrder: p.Order,
		Skip:      page * limit,
		Limit:     limit,
	}

	products, total, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	// ceil(total/limit); an empty collection yields zero pages.
	pages := int((total + limit - 1) / limit)

	return &models.ProductPage{
		Products: products,
		Total:    total,
		Pagination: models.Pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Pages: pages,
		},
	}, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct persists a validated product and publishes a created event.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	s.publish(EventProductCreated, product.ID.Hex(), product.Name)
	return nil
}

// UpdateProduct replaces the addressed product with the validated payload
// and publishes an updated event.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	updated, err := s.repo.Update(ctx, id, product)
	if err != nil {
		return nil, err
	}
	s.publish(EventProductUpdated, id, updated.Name)
	return updated, nil
}

// DeleteProduct removes a product and publishes a deleted event.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(EventProductDeleted, id, "")
	return nil
}

// ListCategories returns the distinct categories present in the store.
func (s *ProductService) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.DistinctCategories(ctx)
}

// publish sends a catalog event. Publishing is best-effort: a failure is
// logged and never fails the request that triggered it.
func (s *ProductService) publish(action, productID, name string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(action, productID, name); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("action", action),
			zap.String("productId", productID),
			zap.Error(err),
		)
	}
}
