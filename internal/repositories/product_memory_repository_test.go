package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"katalog/internal/models"
	"katalog/internal/repositories"
)

func seedRepo(t *testing.T) *repositories.MemoryProductRepository {
	t.Helper()
	repo := repositories.NewMemoryProductRepository()
	products := []models.Product{
		{Name: "iPhone 14", Category: "Electronics", Brand: "Apple", Price: 999, IsActive: true},
		{Name: "Galaxy S23", Category: "Electronics", Brand: "Samsung", Price: 899, IsActive: true},
		{Name: "Air Max 270", Category: "Apparel", Brand: "Nike", Price: 150, IsActive: true},
		{Name: "Running Tee", Category: "Apparel", Brand: "Nike", Price: 25, IsActive: true},
		{Name: "Discontinued TV", Category: "Electronics", Brand: "Samsung", Price: 500, IsActive: false},
	}
	for i := range products {
		assert.NoError(t, repo.Create(context.Background(), &products[i]))
	}
	return repo
}

func listAll(t *testing.T, repo *repositories.MemoryProductRepository, q repositories.ListQuery) ([]models.Product, int64) {
	t.Helper()
	if q.Limit == 0 {
		q.Limit = 100
	}
	if q.SortField == "" {
		q.SortField = "price"
		q.SortOrder = repositories.OrderAsc
	}
	products, total, err := repo.List(context.Background(), q)
	assert.NoError(t, err)
	return products, total
}

func TestMemoryRepo_ListExcludesInactive(t *testing.T) {
	repo := seedRepo(t)

	products, total := listAll(t, repo, repositories.ListQuery{})

	assert.Equal(t, int64(4), total)
	for _, p := range products {
		assert.True(t, p.IsActive)
	}
}

func TestMemoryRepo_ListCategoryFilter(t *testing.T) {
	repo := seedRepo(t)

	products, total := listAll(t, repo, repositories.ListQuery{Category: "Apparel"})

	assert.Equal(t, int64(2), total)
	for _, p := range products {
		assert.Equal(t, "Apparel", p.Category)
	}
}

func TestMemoryRepo_ListBrandFilterIsCaseInsensitiveSubstring(t *testing.T) {
	repo := seedRepo(t)

	products, total := listAll(t, repo, repositories.ListQuery{Brand: "sAmS"})

	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Samsung", products[0].Brand)
}

func TestMemoryRepo_ListPriceRange(t *testing.T) {
	repo := seedRepo(t)

	min := 100.0
	max := 900.0
	products, total := listAll(t, repo, repositories.ListQuery{MinPrice: &min, MaxPrice: &max})

	assert.Equal(t, int64(2), total)
	for _, p := range products {
		assert.GreaterOrEqual(t, p.Price, min)
		assert.LessOrEqual(t, p.Price, max)
	}
}

func TestMemoryRepo_ListSortsByPrice(t *testing.T) {
	repo := seedRepo(t)

	asc, _ := listAll(t, repo, repositories.ListQuery{SortField: "price", SortOrder: repositories.OrderAsc, Limit: 100})
	assert.Equal(t, []float64{25, 150, 899, 999}, prices(asc))

	desc, _ := listAll(t, repo, repositories.ListQuery{SortField: "price", SortOrder: repositories.OrderDesc, Limit: 100})
	assert.Equal(t, []float64{999, 899, 150, 25}, prices(desc))
}

func prices(products []models.Product) []float64 {
	out := make([]float64, len(products))
	for i, p := range products {
		out[i] = p.Price
	}
	return out
}

func TestMemoryRepo_ListPaginates(t *testing.T) {
	repo := seedRepo(t)

	q := repositories.ListQuery{SortField: "price", SortOrder: repositories.OrderAsc, Skip: 0, Limit: 3}
	page1, total, err := repo.List(context.Background(), q)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page1, 3)

	q.Skip = 3
	page2, total, err := repo.List(context.Background(), q)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page2, 1)
	assert.Equal(t, 999.0, page2[0].Price)

	// Skipping past the end yields an empty page, not an error.
	q.Skip = 100
	page3, _, err := repo.List(context.Background(), q)
	assert.NoError(t, err)
	assert.Empty(t, page3)

	// A negative skip is treated as zero rather than slicing out of range.
	q.Skip = -5
	page4, total, err := repo.List(context.Background(), q)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page4, 3)
}

func TestMemoryRepo_CreateAssignsIDAndTimestamps(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	product := models.Product{Name: "Chess Set", Category: "Toys", Brand: "Staunton", Price: 40, IsActive: true}
	assert.NoError(t, repo.Create(context.Background(), &product))

	assert.False(t, product.ID.IsZero())
	assert.False(t, product.CreatedAt.IsZero())
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)

	fetched, err := repo.GetByID(context.Background(), product.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, product, *fetched)
}

func TestMemoryRepo_GetByIDNotFound(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	_, err := repo.GetByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.GetByID(context.Background(), "not-a-valid-id")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMemoryRepo_UpdateReplacesAndPreservesCreatedAt(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	original := models.Product{Name: "Old Name", Category: "Books", Brand: "Acme", Price: 10, Stock: 7, Rating: 4, IsActive: true}
	assert.NoError(t, repo.Create(context.Background(), &original))

	replacement := models.Product{Name: "New Name", Category: "Toys", Brand: "Bolt", Price: 20, IsActive: true}
	updated, err := repo.Update(context.Background(), original.ID.Hex(), &replacement)

	assert.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "New Name", updated.Name)
	// Full replacement: fields absent from the payload go back to zero.
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, 0.0, updated.Rating)

	_, err = repo.Update(context.Background(), primitive.NewObjectID().Hex(), &replacement)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMemoryRepo_DeleteThenGet(t *testing.T) {
	repo := repositories.NewMemoryProductRepository()

	product := models.Product{Name: "Yoga Mat", Category: "Sports", Brand: "Flow", Price: 30, IsActive: true}
	assert.NoError(t, repo.Create(context.Background(), &product))

	id := product.ID.Hex()
	assert.NoError(t, repo.Delete(context.Background(), id))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), id), repositories.ErrNotFound)
}

func TestMemoryRepo_DistinctCategories(t *testing.T) {
	repo := seedRepo(t)

	categories, err := repo.DistinctCategories(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"Apparel", "Electronics"}, categories)
}
