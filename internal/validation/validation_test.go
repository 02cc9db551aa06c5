package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"katalog/internal/validation"
)

func validInput() validation.ProductInput {
	return validation.ProductInput{
		Name:        "iPhone 14 Pro",
		Description: "Latest iPhone with advanced camera system",
		Price:       999.99,
		Category:    "Electronics",
		Brand:       "Apple",
		Stock:       50,
	}
}

func TestValidateProduct_AppliesDefaults(t *testing.T) {
	product, err := validation.Product(validInput())

	assert.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.Equal(t, []string{}, product.Images)
	assert.Equal(t, 0.0, product.Rating)
	assert.Equal(t, 0, product.Reviews)
	assert.Equal(t, 50, product.Stock)
}

func TestValidateProduct_KeepsExplicitIsActive(t *testing.T) {
	in := validInput()
	inactive := false
	in.IsActive = &inactive

	product, err := validation.Product(in)

	assert.NoError(t, err)
	assert.False(t, product.IsActive)
}

func TestValidateProduct_TrimsStrings(t *testing.T) {
	in := validInput()
	in.Name = "  Speaker  "
	in.Brand = " Bose "

	product, err := validation.Product(in)

	assert.NoError(t, err)
	assert.Equal(t, "Speaker", product.Name)
	assert.Equal(t, "Bose", product.Brand)
}

func TestValidateProduct_AcceptsImages(t *testing.T) {
	in := validInput()
	in.Images = []string{
		"https://images.example.com/a.jpg",
		"http://images.example.com/b.jpg",
	}

	product, err := validation.Product(in)

	assert.NoError(t, err)
	assert.Equal(t, in.Images, product.Images)
}

func TestValidateProduct_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*validation.ProductInput)
		want   string
	}{
		{
			name:   "empty payload",
			mutate: func(in *validation.ProductInput) { *in = validation.ProductInput{} },
			want:   "Product name is required",
		},
		{
			name:   "name too long",
			mutate: func(in *validation.ProductInput) { in.Name = strings.Repeat("x", 101) },
			want:   "Product name cannot exceed 100 characters",
		},
		{
			name:   "missing description",
			mutate: func(in *validation.ProductInput) { in.Description = "" },
			want:   "Product description is required",
		},
		{
			name:   "missing price",
			mutate: func(in *validation.ProductInput) { in.Price = 0 },
			want:   "Product price is required",
		},
		{
			name:   "negative price",
			mutate: func(in *validation.ProductInput) { in.Price = -5 },
			want:   "Price must be positive",
		},
		{
			name:   "unknown category",
			mutate: func(in *validation.ProductInput) { in.Category = "Groceries" },
			want:   "Category must be one of: Electronics, Apparel, Home & Garden, Sports, Books, Toys, Health & Beauty",
		},
		{
			name:   "brand too long",
			mutate: func(in *validation.ProductInput) { in.Brand = strings.Repeat("b", 51) },
			want:   "Brand name cannot exceed 50 characters",
		},
		{
			name:   "negative stock",
			mutate: func(in *validation.ProductInput) { in.Stock = -1 },
			want:   "Stock cannot be negative",
		},
		{
			name:   "non-http image url",
			mutate: func(in *validation.ProductInput) { in.Images = []string{"ftp://example.com/a.jpg"} },
			want:   "Image URLs must be valid HTTP/HTTPS URLs",
		},
		{
			name:   "rating above bound",
			mutate: func(in *validation.ProductInput) { in.Rating = 5.5 },
			want:   "Rating cannot exceed 5",
		},
		{
			name:   "negative rating",
			mutate: func(in *validation.ProductInput) { in.Rating = -1 },
			want:   "Rating cannot be less than 0",
		},
		{
			name:   "negative reviews",
			mutate: func(in *validation.ProductInput) { in.Reviews = -3 },
			want:   "Review count cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := validation.Product(in)

			assert.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
