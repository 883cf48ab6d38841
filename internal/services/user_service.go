package services

import (
	"fmt"
	"time"

	"reviewz/internal/models"
	"reviewz/internal/storage"
)

// UserService handles business logic related to users.
type UserService struct {
	users storage.Store[models.User]
	ids   storage.Allocator
	mq    EventPublisher
	now   func() uint64
}

// NewUserService creates a new UserService. mq may be nil to disable events.
func NewUserService(users storage.Store[models.User], ids storage.Allocator, mq EventPublisher) *UserService {
	return &UserService{
		users: users,
		ids:   ids,
		mq:    mq,
		now:   func() uint64 { return uint64(time.Now().UnixNano()) },
	}
}

// GetAllUsers returns every user in ascending id order.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.users.Scan()
}

// CreateUser validates the payload against current store state, allocates an
// identifier and stores the new user. The identifier is allocated only after
// validation passes, so a rejected request never consumes one.
func (s *UserService) CreateUser(data models.CreateUserPayload) (*models.User, error) {
	valid, err := s.createUserValidation(data)
	if err != nil {
		return nil, fmt.Errorf("failed to validate user payload: %w", err)
	}
	if !valid {
		return nil, fmt.Errorf("%w: make sure the email is in a valid format, the role is Customer or StoreOwner, and email and username are unique", ErrInvalidPayload)
	}

	id, err := s.ids.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate user id: %w", err)
	}
	user := models.User{
		UserID:   id,
		Email:    data.Email,
		Username: data.Username,
		Role:     data.Role,
		JoinedAt: s.now(),
	}
	replaced, err := s.users.Put(id, user)
	if err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}
	if replaced {
		// A freshly allocated identifier must never land on an existing
		// record.
		return nil, fmt.Errorf("%w: error while inserting new user", ErrNotFound)
	}

	publishEvent(s.mq, "user.created", user)
	return &user, nil
}

// createUserValidation ANDs the user creation predicates: email format, known
// role, and email/username uniqueness across all existing users.
func (s *UserService) createUserValidation(data models.CreateUserPayload) (bool, error) {
	if !emailPattern.MatchString(data.Email) || !data.Role.Valid() {
		return false, nil
	}
	emailUnique, err := attributeUnique(s.users, data.Email, UniqueEmail)
	if err != nil {
		return false, err
	}
	usernameUnique, err := attributeUnique(s.users, data.Username, UniqueUsername)
	if err != nil {
		return false, err
	}
	return emailUnique && usernameUnique, nil
}

// ClearAllUsers removes every user created so far. The id counter is not
// reset, so later users continue from the prior high-water mark.
func (s *UserService) ClearAllUsers() error {
	count, err := s.ids.Current()
	if err != nil {
		return fmt.Errorf("failed to read user id counter: %w", err)
	}
	if err := s.users.ClearUpTo(count); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	return nil
}
