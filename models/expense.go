package models

import "time"

// Entry types for the expense ledger. Amount is always non-negative; the
// sign is implied by Type.
const (
	EntryTypeExpense = "expense"
	EntryTypeIncome  = "income"
)

// Expense is a single expense or income entry.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	EntryDate   time.Time `gorm:"index;not null" json:"entry_date"`
	Category    string    `gorm:"size:100;not null;default:General" json:"category"`
	Description string    `gorm:"size:255" json:"description"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Type        string    `gorm:"size:20;not null;default:expense" json:"type"`
}
