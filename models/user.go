package models

import "time"

// User is the operator account that owns every record in the store.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Username       string    `gorm:"size:120;not null;unique" json:"username"`
	HashedPassword []byte    `gorm:"not null" json:"-"`
}
