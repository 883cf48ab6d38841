package handlers

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"reviewz/internal/models"
	"reviewz/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleAddProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Delete("/", h.HandleClearProducts)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Error().Err(err).Msg("Error getting all products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleAddProduct handles new product creation.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var payload models.AddProductPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Warn().Err(err).Msg("Error parsing add product request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(payload); err != nil {
		return validationError(c, err)
	}

	product, err := h.service.AddProduct(payload)
	if err != nil {
		log.Warn().Err(err).Msg("Error adding product")
		return serviceError(c, err, "Could not add product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product's name, description and
// link. The product id comes from the path; the payload's user_id must match
// the recorded owner.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
			"error":   err.Error(),
		})
	}

	var payload models.UpdateProductPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Warn().Err(err).Msg("Error parsing update product request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	payload.ProductID = id
	if err := h.validate.Struct(payload); err != nil {
		return validationError(c, err)
	}

	product, err := h.service.UpdateProduct(payload)
	if err != nil {
		log.Warn().Err(err).Uint64("productId", id).Msg("Error updating product")
		return serviceError(c, err, "Could not update product")
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product and cascades over its reviews. The
// requesting user id comes from the user_id query parameter.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product id",
			"error":   err.Error(),
		})
	}
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "The user_id query parameter is required",
			"error":   err.Error(),
		})
	}

	product, err := h.service.DeleteProduct(models.DeleteProductPayload{
		ProductID: id,
		UserID:    userID,
	})
	if err != nil {
		log.Warn().Err(err).Uint64("productId", id).Msg("Error deleting product")
		return serviceError(c, err, "Could not delete product")
	}
	return c.JSON(product)
}

// HandleClearProducts removes all products unconditionally. Reviews are left
// untouched.
func (h *ProductHandler) HandleClearProducts(c *fiber.Ctx) error {
	if err := h.service.ClearAllProducts(); err != nil {
		log.Error().Err(err).Msg("Error clearing products")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "All products cleared",
	})
}
