package models

import "time"

// Customer is a store customer. CreatedDate is the filterable business date,
// distinct from the gorm CreatedAt bookkeeping timestamp.
type Customer struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	UserID            uint      `gorm:"index;not null" json:"user_id"`
	CreatedDate       time.Time `gorm:"index;not null" json:"created_date"`
	Name              string    `gorm:"size:200;not null" json:"name"`
	Email             string    `gorm:"size:200" json:"email"`
	Phone             string    `gorm:"size:50" json:"phone"`
	City              string    `gorm:"size:100" json:"city"`
	Country           string    `gorm:"size:100" json:"country"`
	ShopifyCustomerID string    `gorm:"size:100" json:"shopify_customer_id"`
	Note              string    `gorm:"size:500" json:"note"`
}
