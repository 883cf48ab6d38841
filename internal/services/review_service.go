package services

import (
	"fmt"

	"reviewz/internal/models"
	"reviewz/internal/storage"
)

// ReviewService handles business logic related to reviews.
type ReviewService struct {
	reviews  storage.Store[models.Review]
	products storage.Store[models.Product]
	users    storage.Store[models.User]
	ids      storage.Allocator
	mq       EventPublisher
}

// NewReviewService creates a new ReviewService. mq may be nil to disable
// events.
func NewReviewService(
	reviews storage.Store[models.Review],
	products storage.Store[models.Product],
	users storage.Store[models.User],
	ids storage.Allocator,
	mq EventPublisher,
) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
		users:    users,
		ids:      ids,
		mq:       mq,
	}
}

// GetAllReviews returns every review in ascending id order.
func (s *ReviewService) GetAllReviews() ([]models.Review, error) {
	return s.reviews.Scan()
}

// AddReview validates the payload, allocates an identifier and stores the new
// review.
func (s *ReviewService) AddReview(data models.AddReviewPayload) (*models.Review, error) {
	valid, err := s.addReviewValidation(data)
	if err != nil {
		return nil, fmt.Errorf("failed to validate review payload: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: user and product must exist, the user must be a customer, and the rating must be in range 1-5 inclusive", ErrInvalidPayload)
	}

	id, err := s.ids.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate review id: %w", err)
	}
	review := models.Review{
		ReviewID:          id,
		ProductID:         data.ProductID,
		UserID:            data.UserID,
		Rating:            data.Rating,
		ReviewDescription: data.ReviewDescription,
	}
	replaced, err := s.reviews.Put(id, review)
	if err != nil {
		return nil, fmt.Errorf("failed to store review: %w", err)
	}
	if replaced {
		return nil, fmt.Errorf("%w: error while inserting new review", ErrNotFound)
	}

	publishEvent(s.mq, "review.created", review)
	return &review, nil
}

// addReviewValidation ANDs the review creation predicates: referenced product
// and user must exist, the user must have the Customer role and the rating
// must be within 1-5. An absent user fails the role check outright.
func (s *ReviewService) addReviewValidation(data models.AddReviewPayload) (bool, error) {
	if data.Rating < 1 || data.Rating > 5 {
		return false, nil
	}
	_, productExists, err := s.products.Get(data.ProductID)
	if err != nil {
		return false, err
	}
	if !productExists {
		return false, nil
	}
	user, userExists, err := s.users.Get(data.UserID)
	if err != nil {
		return false, err
	}
	if !userExists {
		return false, nil
	}
	return user.Role == models.RoleCustomer, nil
}
