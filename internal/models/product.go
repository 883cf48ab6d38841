package models

// Product represents a product listed by a store owner.
type Product struct {
	ProductID          uint64 `json:"product_id" gorm:"primaryKey;autoIncrement:false"`
	ProductName        string `json:"product_name" gorm:"type:varchar(255)"`
	ProductDescription string `json:"product_description" gorm:"type:varchar(1000)"`
	ProductLink        string `json:"product_link" gorm:"type:varchar(512)"`
	OwnerUserID        uint64 `json:"owner_user_id"` // immutable after creation
}

// AddProductPayload is the request body for product creation.
type AddProductPayload struct {
	ProductName        string `json:"product_name" validate:"required"`
	ProductDescription string `json:"product_description"`
	ProductLink        string `json:"product_link" validate:"required"`
	OwnerUserID        uint64 `json:"owner_user_id"`
}

// UpdateProductPayload is the request body for a product update. UserID is
// used only for the ownership check and is never written to the record.
type UpdateProductPayload struct {
	ProductID          uint64 `json:"product_id"`
	UserID             uint64 `json:"user_id"`
	ProductName        string `json:"product_name" validate:"required"`
	ProductDescription string `json:"product_description"`
	ProductLink        string `json:"product_link" validate:"required"`
}

// DeleteProductPayload is the request body for a product deletion.
type DeleteProductPayload struct {
	ProductID uint64 `json:"product_id"`
	UserID    uint64 `json:"user_id"`
}
