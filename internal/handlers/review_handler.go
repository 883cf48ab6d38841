package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"reviewz/internal/models"
	"reviewz/internal/services"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	reviewRoutes := router.Group("/reviews")
	reviewRoutes.Get("/", h.HandleGetReviews)
	reviewRoutes.Post("/", h.HandleAddReview)
}

// HandleGetReviews retrieves all reviews.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	reviews, err := h.service.GetAllReviews()
	if err != nil {
		log.Error().Err(err).Msg("Error getting all reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// HandleAddReview handles new review creation.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	var payload models.AddReviewPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Warn().Err(err).Msg("Error parsing add review request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(payload); err != nil {
		return validationError(c, err)
	}

	review, err := h.service.AddReview(payload)
	if err != nil {
		log.Warn().Err(err).Msg("Error adding review")
		return serviceError(c, err, "Could not add review")
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
