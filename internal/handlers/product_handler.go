package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/internal/validation"
)

// ProductHandler handles HTTP requests for the product resource.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleList)
	products.Post("/", h.HandleCreate)
	// /categories must be registered before /:id.
	products.Get("/categories", h.HandleListCategories)
	products.Get("/:id", h.HandleGet)
	products.Put("/:id", h.HandleUpdate)
	products.Delete("/:id", h.HandleDelete)
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// queryInt parses an optional integer query parameter.
func queryInt(c *fiber.Ctx, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be a number")
	}
	return n, nil
}

// queryFloat parses an optional numeric query parameter.
func queryFloat(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New(name + " must be a number")
	}
	return &f, nil
}

// HandleList returns a filtered, sorted, paginated product listing.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	params := services.ListParams{
		Category: c.Query("category"),
		Brand:    c.Query("brand"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}

	var err error
	if params.MinPrice, err = queryFloat(c, "minPrice"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if params.MaxPrice, err = queryFloat(c, "maxPrice"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if params.Page, err = queryInt(c, "page"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if params.Limit, err = queryInt(c, "limit"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	page, err := h.service.ListProducts(c.Context(), params)
	if err != nil {
		h.logger.Error("error listing products", zap.Error(err))
		return err
	}

	h.logger.Info("products retrieved",
		zap.Int("count", len(page.Products)),
		zap.Int64("total", page.Total),
		zap.String("category", params.Category),
		zap.String("brand", params.Brand),
	)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"count":      len(page.Products),
		"total":      page.Total,
		"pagination": page.Pagination,
		"data":       page.Products,
	})
}

// HandleGet returns a single product by its identifier.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id := c.Params("id")

	product, err := h.service.GetProductByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.logger.Warn("product not found", zap.String("productId", id))
			return fail(c, fiber.StatusNotFound, "Product not found")
		}
		h.logger.Error("error getting product", zap.String("productId", id), zap.Error(err))
		return err
	}

	h.logger.Info("product retrieved", zap.String("productId", id))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleCreate validates the payload and persists a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var input validation.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	product, err := validation.Product(input)
	if err != nil {
		h.logger.Warn("product validation failed", zap.String("reason", err.Error()))
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.CreateProduct(c.Context(), &product); err != nil {
		h.logger.Error("error creating product", zap.Error(err))
		return err
	}

	h.logger.Info("product created",
		zap.String("productId", product.ID.Hex()),
		zap.String("productName", product.Name),
	)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// HandleUpdate validates the payload and replaces the addressed product.
// Fields omitted from the payload revert to their defaults.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")

	var input validation.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	product, err := validation.Product(input)
	if err != nil {
		h.logger.Warn("product validation failed", zap.String("productId", id), zap.String("reason", err.Error()))
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	updated, err := h.service.UpdateProduct(c.Context(), id, &product)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.logger.Warn("product not found for update", zap.String("productId", id))
			return fail(c, fiber.StatusNotFound, "Product not found")
		}
		h.logger.Error("error updating product", zap.String("productId", id), zap.Error(err))
		return err
	}

	h.logger.Info("product updated", zap.String("productId", id))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}

// HandleDelete removes a product permanently.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.service.DeleteProduct(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.logger.Warn("product not found for deletion", zap.String("productId", id))
			return fail(c, fiber.StatusNotFound, "Product not found")
		}
		h.logger.Error("error deleting product", zap.String("productId", id), zap.Error(err))
		return err
	}

	h.logger.Info("product deleted", zap.String("productId", id))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

// HandleListCategories returns the distinct categories present in the store.
func (h *ProductHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		h.logger.Error("error listing categories", zap.Error(err))
		return err
	}

	h.logger.Info("categories retrieved", zap.Int("count", len(categories)))
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"count":   len(categories),
		"data":    categories,
	})
}
