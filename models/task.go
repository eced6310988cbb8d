package models

import "time"

var (
	TaskStatuses   = []string{"Pending", "In Progress", "Done"}
	TaskPriorities = []string{"Low", "Medium", "High"}
)

// Task is a follow-up item, optionally tied to a customer.
type Task struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	CustomerID *uint     `gorm:"index" json:"customer_id"`
	DueDate    time.Time `gorm:"index;not null" json:"due_date"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Status     string    `gorm:"size:50;not null;default:Pending" json:"status"`
	Priority   string    `gorm:"size:20" json:"priority"`
	Note       string    `gorm:"size:500" json:"note"`
}
