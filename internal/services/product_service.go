package services

import (
	"fmt"

	"reviewz/internal/models"
	"reviewz/internal/storage"
)

// ProductService handles business logic related to products, including the
// review cascade on deletion.
type ProductService struct {
	products storage.Store[models.Product]
	users    storage.Store[models.User]
	reviews  storage.Store[models.Review]
	ids      storage.Allocator
	mq       EventPublisher
}

// NewProductService creates a new ProductService. mq may be nil to disable
// events.
func NewProductService(
	products storage.Store[models.Product],
	users storage.Store[models.User],
	reviews storage.Store[models.Review],
	ids storage.Allocator,
	mq EventPublisher,
) *ProductService {
	return &ProductService{
		products: products,
		users:    users,
		reviews:  reviews,
		ids:      ids,
		mq:       mq,
	}
}

// GetAllProducts returns every product in ascending id order.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.products.Scan()
}

// AddProduct validates the payload, allocates an identifier and stores the
// new product.
func (s *ProductService) AddProduct(data models.AddProductPayload) (*models.Product, error) {
	valid, err := s.addProductValidation(data)
	if err != nil {
		return nil, fmt.Errorf("failed to validate product payload: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: the owner must be an existing store owner and the link must be a valid http(s) URL", ErrInvalidPayload)
	}

	id, err := s.ids.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate product id: %w", err)
	}
	product := models.Product{
		ProductID:          id,
		ProductName:        data.ProductName,
		ProductDescription: data.ProductDescription,
		ProductLink:        data.ProductLink,
		OwnerUserID:        data.OwnerUserID,
	}
	replaced, err := s.products.Put(id, product)
	if err != nil {
		return nil, fmt.Errorf("failed to store product: %w", err)
	}
	if replaced {
		return nil, fmt.Errorf("%w: error while inserting new product", ErrNotFound)
	}

	publishEvent(s.mq, "product.created", product)
	return &product, nil
}

// addProductValidation ANDs the product creation predicates: the owner must
// resolve to an existing user with the StoreOwner role and the link must
// match the URL pattern. An absent owner fails the role check outright.
func (s *ProductService) addProductValidation(data models.AddProductPayload) (bool, error) {
	owner, ok, err := s.users.Get(data.OwnerUserID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return owner.Role == models.RoleStoreOwner && linkPattern.MatchString(data.ProductLink), nil
}

// ownershipValidation reports whether the product exists and is owned by
// userID. An absent product fails the check outright.
func (s *ProductService) ownershipValidation(productID, userID uint64) (bool, error) {
	product, ok, err := s.products.Get(productID)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return product.OwnerUserID == userID, nil
}

// UpdateProduct overwrites a product's name, description and link after the
// ownership check. The recorded owner is preserved; the payload's user id is
// used only for authorization.
func (s *ProductService) UpdateProduct(data models.UpdateProductPayload) (*models.Product, error) {
	valid, err := s.ownershipValidation(data.ProductID, data.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate product update: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: the product must exist and the user must be the owner of the product", ErrInvalidPayload)
	}

	existing, ok, err := s.products.Get(data.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: couldn't update a product with id=%d, product not found", ErrNotFound, data.ProductID)
	}
	updated := models.Product{
		ProductID:          data.ProductID,
		ProductName:        data.ProductName,
		ProductDescription: data.ProductDescription,
		ProductLink:        data.ProductLink,
		OwnerUserID:        existing.OwnerUserID,
	}
	if _, err := s.products.Put(data.ProductID, updated); err != nil {
		return nil, fmt.Errorf("failed to store product: %w", err)
	}

	publishEvent(s.mq, "product.updated", updated)
	return &updated, nil
}

// DeleteProduct removes a product and every review referencing it after the
// ownership check. Reviews are removed only once validation has reconfirmed
// the product's existence, so a rejected delete never touches them.
func (s *ProductService) DeleteProduct(data models.DeleteProductPayload) (*models.Product, error) {
	valid, err := s.ownershipValidation(data.ProductID, data.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to validate product deletion: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: the product must exist and the user must be the owner of the product", ErrInvalidPayload)
	}

	dependents, err := s.reviewsByProductID(data.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to collect reviews: %w", err)
	}
	for _, review := range dependents {
		if _, _, err := s.reviews.Remove(review.ReviewID); err != nil {
			return nil, fmt.Errorf("failed to remove review %d: %w", review.ReviewID, err)
		}
	}

	removed, ok, err := s.products.Remove(data.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove product: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: couldn't delete a product with id=%d, product not found", ErrNotFound, data.ProductID)
	}

	publishEvent(s.mq, "product.deleted", removed)
	return &removed, nil
}

// reviewsByProductID collects every review referencing productID.
func (s *ProductService) reviewsByProductID(productID uint64) ([]models.Review, error) {
	all, err := s.reviews.Scan()
	if err != nil {
		return nil, err
	}
	var matched []models.Review
	for _, review := range all {
		if review.ProductID == productID {
			matched = append(matched, review)
		}
	}
	return matched, nil
}

// ClearAllProducts removes every product created so far without resetting the
// id counter. Reviews are left untouched.
func (s *ProductService) ClearAllProducts() error {
	count, err := s.ids.Current()
	if err != nil {
		return fmt.Errorf("failed to read product id counter: %w", err)
	}
	if err := s.products.ClearUpTo(count); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	return nil
}
