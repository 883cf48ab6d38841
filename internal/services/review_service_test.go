package services_test

import (
	"testing"

	"reviewz/internal/models"
	"reviewz/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewService_AddReview(t *testing.T) {
	env := setupServices(nil)
	owner := mustCreateUser(t, env, "owner@example.com", "owner", models.RoleStoreOwner)
	customer := mustCreateUser(t, env, "cust@example.com", "cust", models.RoleCustomer)
	product := mustAddProduct(t, env, "Keyboard", "https://shop.example.com/keyboard", owner.UserID)

	// Boundary ratings 1 and 5 are both accepted with the exact rating kept
	for i, rating := range []uint8{1, 5} {
		review, err := env.reviewService.AddReview(models.AddReviewPayload{
			ProductID:         product.ProductID,
			UserID:            customer.UserID,
			Rating:            rating,
			ReviewDescription: "works",
		})
		assert.NoError(t, err)
		assert.Equal(t, uint64(i), review.ReviewID)
		assert.Equal(t, rating, review.Rating)
	}
}

func TestReviewService_AddReview_RatingOutOfRange(t *testing.T) {
	env := setupServices(nil)
	owner := mustCreateUser(t, env, "owner@example.com", "owner", models.RoleStoreOwner)
	customer := mustCreateUser(t, env, "cust@example.com", "cust", models.RoleCustomer)
	product := mustAddProduct(t, env, "Keyboard", "https://shop.example.com/keyboard", owner.UserID)

	for _, rating := range []uint8{0, 6} {
		_, err := env.reviewService.AddReview(models.AddReviewPayload{
			ProductID: product.ProductID,
			UserID:    customer.UserID,
			Rating:    rating,
		})
		assert.ErrorIs(t, err, services.ErrInvalidPayload, "rating %d should be rejected", rating)
	}

	reviews, err := env.reviewService.GetAllReviews()
	assert.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestReviewService_AddReview_DanglingReferences(t *testing.T) {
	env := setupServices(nil)
	owner := mustCreateUser(t, env, "owner@example.com", "owner", models.RoleStoreOwner)
	customer := mustCreateUser(t, env, "cust@example.com", "cust", models.RoleCustomer)
	product := mustAddProduct(t, env, "Keyboard", "https://shop.example.com/keyboard", owner.UserID)

	// Unknown product
	_, err := env.reviewService.AddReview(models.AddReviewPayload{
		ProductID: 99,
		UserID:    customer.UserID,
		Rating:    3,
	})
	assert.ErrorIs(t, err, services.ErrInvalidPayload)

	// Unknown user
	_, err = env.reviewService.AddReview(models.AddReviewPayload{
		ProductID: product.ProductID,
		UserID:    99,
		Rating:    3,
	})
	assert.ErrorIs(t, err, services.ErrInvalidPayload)
}

func TestReviewService_AddReview_AuthorMustBeCustomer(t *testing.T) {
	env := setupServices(nil)
	owner := mustCreateUser(t, env, "owner@example.com", "owner", models.RoleStoreOwner)
	product := mustAddProduct(t, env, "Keyboard", "https://shop.example.com/keyboard", owner.UserID)

	// Store owners cannot review, not even their own products
	_, err := env.reviewService.AddReview(models.AddReviewPayload{
		ProductID: product.ProductID,
		UserID:    owner.UserID,
		Rating:    5,
	})
	assert.ErrorIs(t, err, services.ErrInvalidPayload)

	reviews, err := env.reviewService.GetAllReviews()
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
