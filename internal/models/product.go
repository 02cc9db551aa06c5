package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories is the fixed set of product categories.
var Categories = []string{
	"Electronics",
	"Apparel",
	"Home & Garden",
	"Sports",
	"Books",
	"Toys",
	"Health & Beauty",
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product represents a product in the catalog.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Category    string             `json:"category" bson:"category"`
	Brand       string             `json:"brand" bson:"brand"`
	Stock       int                `json:"stock" bson:"stock"`
	Images      []string           `json:"images" bson:"images"`
	Rating      float64            `json:"rating" bson:"rating"`
	Reviews     int                `json:"reviews" bson:"reviews"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Pagination describes the page window of a list result.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Products   []Product
	Total      int64
	Pagination Pagination
}
