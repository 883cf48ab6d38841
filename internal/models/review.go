package models

// Review represents a customer review of a product.
type Review struct {
	ReviewID          uint64 `json:"review_id" gorm:"primaryKey;autoIncrement:false"`
	ProductID         uint64 `json:"product_id"`
	UserID            uint64 `json:"user_id"`
	Rating            uint8  `json:"rating"` // 1-5 inclusive
	ReviewDescription string `json:"review_description" gorm:"type:varchar(1000)"`
}

// AddReviewPayload is the request body for review creation.
type AddReviewPayload struct {
	ProductID         uint64 `json:"product_id"`
	UserID            uint64 `json:"user_id"`
	Rating            uint8  `json:"rating"`
	ReviewDescription string `json:"review_description"`
}
