package models

// Role classifies a user as a buyer or a seller.
type Role string

const (
	RoleCustomer   Role = "Customer"
	RoleStoreOwner Role = "StoreOwner"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleStoreOwner
}

// User represents a registered user of the service.
type User struct {
	UserID   uint64 `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Email    string `json:"email" gorm:"type:varchar(255)"`
	Username string `json:"username" gorm:"type:varchar(100)"`
	Role     Role   `json:"role" gorm:"type:varchar(20)"`
	JoinedAt uint64 `json:"joined_at"` // Unix nanoseconds, set at creation, immutable
}

// CreateUserPayload is the request body for user creation.
type CreateUserPayload struct {
	Email    string `json:"email" validate:"required"`
	Username string `json:"username" validate:"required"`
	Role     Role   `json:"role" validate:"required"`
}
