package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"reviewz/internal/models"
	"reviewz/internal/services"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Delete("/", h.HandleClearUsers)
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers()
	if err != nil {
		log.Error().Err(err).Msg("Error getting all users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleCreateUser handles new user creation.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var payload models.CreateUserPayload
	if err := c.BodyParser(&payload); err != nil {
		log.Warn().Err(err).Msg("Error parsing create user request body")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(payload); err != nil {
		return validationError(c, err)
	}

	user, err := h.service.CreateUser(payload)
	if err != nil {
		log.Warn().Err(err).Msg("Error creating user")
		return serviceError(c, err, "Could not create user")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleClearUsers removes all users unconditionally.
func (h *UserHandler) HandleClearUsers(c *fiber.Ctx) error {
	if err := h.service.ClearAllUsers(); err != nil {
		log.Error().Err(err).Msg("Error clearing users")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear users",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "All users cleared",
	})
}
