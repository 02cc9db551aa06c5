package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"katalog/internal/models"
)

// ProductInput is the client payload accepted by create and update.
// IsActive is a pointer so an omitted field can default to true.
type ProductInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=500"`
	Price       float64  `json:"price" validate:"required,gt=0"`
	Category    string   `json:"category" validate:"required,category"`
	Brand       string   `json:"brand" validate:"required,max=50"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images" validate:"omitempty,dive,httpurl"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	Reviews     int      `json:"reviews" validate:"gte=0"`
	IsActive    *bool    `json:"isActive"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// oneof chokes on values containing spaces ("Home & Garden"), so the
	// enum check is a registered validator instead.
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(fl.Field().String())
	})
	_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		if err != nil {
			return false
		}
		return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
	})
	return v
}

// Product validates the payload and returns the defaulted model. On
// failure it returns a single human-readable message for the first
// failing field.
func Product(in ProductInput) (models.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Brand = strings.TrimSpace(in.Brand)
	in.Category = strings.TrimSpace(in.Category)

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return models.Product{}, errors.New(message(fieldErrs[0]))
		}
		return models.Product{}, err
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}

	return models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Brand:       in.Brand,
		Stock:       in.Stock,
		Images:      images,
		Rating:      in.Rating,
		Reviews:     in.Reviews,
		IsActive:    isActive,
	}, nil
}

// message maps the first failing field to the message a client sees.
func message(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "Name.required":
		return "Product name is required"
	case "Name.max":
		return "Product name cannot exceed 100 characters"
	case "Description.required":
		return "Product description is required"
	case "Description.max":
		return "Product description cannot exceed 500 characters"
	case "Price.required":
		return "Product price is required"
	case "Price.gt":
		return "Price must be positive"
	case "Category.required":
		return "Product category is required"
	case "Category.category":
		return "Category must be one of: " + strings.Join(models.Categories, ", ")
	case "Brand.required":
		return "Product brand is required"
	case "Brand.max":
		return "Brand name cannot exceed 50 characters"
	case "Stock.gte":
		return "Stock cannot be negative"
	case "Rating.gte":
		return "Rating cannot be less than 0"
	case "Rating.lte":
		return "Rating cannot exceed 5"
	case "Reviews.gte":
		return "Review count cannot be negative"
	}
	if fe.Tag() == "httpurl" {
		return "Image URLs must be valid HTTP/HTTPS URLs"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}
