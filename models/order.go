package models

import "time"

// Payment and fulfillment statuses accepted on orders.
var (
	PaymentStatuses     = []string{"Paid", "Pending", "Refunded"}
	FulfillmentStatuses = []string{"Fulfilled", "Unfulfilled", "Partial"}
)

// Order is a sales order. CustomerID is nullable; deleting a customer nulls
// it rather than cascading.
type Order struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	UserID            uint      `gorm:"index;not null" json:"user_id"`
	CustomerID        *uint     `gorm:"index" json:"customer_id"`
	OrderDate         time.Time `gorm:"index;not null" json:"order_date"`
	OrderNumber       string    `gorm:"size:100;not null" json:"order_number"`
	TotalAmount       float64   `gorm:"not null" json:"total_amount"`
	Currency          string    `gorm:"size:10;default:USD" json:"currency"`
	PaymentStatus     string    `gorm:"size:50" json:"payment_status"`
	FulfillmentStatus string    `gorm:"size:50" json:"fulfillment_status"`
	SalesChannel      string    `gorm:"size:100" json:"sales_channel"`
	Note              string    `gorm:"size:500" json:"note"`
}
