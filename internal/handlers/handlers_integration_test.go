package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"reviewz/internal/handlers"
	"reviewz/internal/models"
	"reviewz/internal/services"
	"reviewz/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupApp builds a Fiber app over in-memory storage with all handlers
// registered, mirroring the wiring in NewApp without RabbitMQ.
func setupApp() *fiber.App {
	users := storage.NewMemoryStore[models.User]()
	products := storage.NewMemoryStore[models.Product]()
	reviews := storage.NewMemoryStore[models.Review]()

	userService := services.NewUserService(users, storage.NewMemoryAllocator(), nil)
	productService := services.NewProductService(products, users, reviews, storage.NewMemoryAllocator(), nil)
	reviewService := services.NewReviewService(reviews, products, users, storage.NewMemoryAllocator(), nil)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewUserHandler(userService).RegisterRoutes(apiV1)
	handlers.NewProductHandler(productService).RegisterRoutes(apiV1)
	handlers.NewReviewHandler(reviewService).RegisterRoutes(apiV1)
	return app
}

// doJSON performs a request with a JSON body and returns status and raw body.
func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func createUser(t *testing.T, app *fiber.App, email, username string, role models.Role) models.User {
	t.Helper()
	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/users", map[string]any{
		"email":    email,
		"username": username,
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var user models.User
	require.NoError(t, json.Unmarshal(raw, &user))
	return user
}

func TestUserEndpoints(t *testing.T) {
	app := setupApp()

	alice := createUser(t, app, "alice@example.com", "alice", models.RoleCustomer)
	assert.Equal(t, uint64(0), alice.UserID)
	assert.NotZero(t, alice.JoinedAt)

	// Malformed email is rejected by the service
	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/users", map[string]any{
		"email":    "not-an-email",
		"username": "bob",
		"role":     "Customer",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "invalid payload")

	// Missing fields are rejected by the request validator
	status, raw = doJSON(t, app, http.MethodPost, "/api/v1/users", map[string]any{
		"username": "bob",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "Validation failed")

	// Duplicate email is rejected and the store stays unchanged
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/users", map[string]any{
		"email":    "alice@example.com",
		"username": "alice2",
		"role":     "StoreOwner",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusOK, status)
	var users []models.User
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Len(t, users, 1)

	// Clearing twice succeeds both times
	for i := 0; i < 2; i++ {
		status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/users", nil)
		assert.Equal(t, http.StatusOK, status)
	}
	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusOK, status)
	users = nil
	require.NoError(t, json.Unmarshal(raw, &users))
	assert.Empty(t, users)
}

func TestProductLifecycle(t *testing.T) {
	app := setupApp()
	owner := createUser(t, app, "owner@example.com", "owner", models.RoleStoreOwner)
	customer := createUser(t, app, "cust@example.com", "cust", models.RoleCustomer)

	// Customers cannot add products
	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]any{
		"product_name": "Keyboard",
		"product_link": "https://shop.example.com/keyboard",
		"owner_user_id": customer.UserID,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]any{
		"product_name":        "Keyboard",
		"product_description": "Mechanical keyboard",
		"product_link":        "https://shop.example.com/keyboard",
		"owner_user_id":       owner.UserID,
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var product models.Product
	require.NoError(t, json.Unmarshal(raw, &product))
	assert.Equal(t, uint64(0), product.ProductID)

	status, raw = doJSON(t, app, http.MethodPost, "/api/v1/reviews", map[string]any{
		"product_id":         product.ProductID,
		"user_id":            customer.UserID,
		"rating":             4,
		"review_description": "clicky",
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)

	// Update by a non-owner is rejected and changes nothing
	status, _ = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", product.ProductID), map[string]any{
		"user_id":      customer.UserID,
		"product_name": "Hijacked",
		"product_link": "https://evil.example.com/x",
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, status)
	var products []models.Product
	require.NoError(t, json.Unmarshal(raw, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Keyboard", products[0].ProductName)

	// Update by the owner succeeds and preserves the owner
	status, raw = doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/v1/products/%d", product.ProductID), map[string]any{
		"user_id":      owner.UserID,
		"product_name": "Keyboard v2",
		"product_link": "https://shop.example.com/keyboard-v2",
	})
	require.Equal(t, http.StatusOK, status, "body: %s", raw)
	var updated models.Product
	require.NoError(t, json.Unmarshal(raw, &updated))
	assert.Equal(t, "Keyboard v2", updated.ProductName)
	assert.Equal(t, owner.UserID, updated.OwnerUserID)

	// Delete requires the user_id parameter
	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d", product.ProductID), nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Delete by a non-owner is rejected; the review survives
	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d?user_id=%d", product.ProductID, customer.UserID), nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Delete by the owner cascades over the reviews
	status, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/products/%d?user_id=%d", product.ProductID, owner.UserID), nil)
	assert.Equal(t, http.StatusOK, status)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/products", nil)
	assert.Equal(t, http.StatusOK, status)
	products = nil
	require.NoError(t, json.Unmarshal(raw, &products))
	assert.Empty(t, products)

	status, raw = doJSON(t, app, http.MethodGet, "/api/v1/reviews", nil)
	assert.Equal(t, http.StatusOK, status)
	var reviews []models.Review
	require.NoError(t, json.Unmarshal(raw, &reviews))
	assert.Empty(t, reviews)
}

func TestReviewEndpointRejectsBadRating(t *testing.T) {
	app := setupApp()
	owner := createUser(t, app, "owner@example.com", "owner", models.RoleStoreOwner)
	customer := createUser(t, app, "cust@example.com", "cust", models.RoleCustomer)

	status, raw := doJSON(t, app, http.MethodPost, "/api/v1/products", map[string]any{
		"product_name":  "Keyboard",
		"product_link":  "https://shop.example.com/keyboard",
		"owner_user_id": owner.UserID,
	})
	require.Equal(t, http.StatusCreated, status, "body: %s", raw)
	var product models.Product
	require.NoError(t, json.Unmarshal(raw, &product))

	for _, rating := range []int{0, 6} {
		status, _ = doJSON(t, app, http.MethodPost, "/api/v1/reviews", map[string]any{
			"product_id": product.ProductID,
			"user_id":    customer.UserID,
			"rating":     rating,
		})
		assert.Equal(t, http.StatusBadRequest, status, "rating %d", rating)
	}
}
