package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
)

// Item is a single invoice line. Items are serialized as JSON on the
// invoice row; an issued invoice is never edited.
type Item struct {
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

type Invoice struct {
	ID        snowflake.ID   `json:"id" gorm:"primaryKey"`
	StudentID snowflake.ID   `json:"student_id" gorm:"not null;index"`
	BookingID *snowflake.ID  `json:"booking_id,omitempty" gorm:"index"`
	Items     datatypes.JSON `json:"items" gorm:"not null"`
	Total     int64          `json:"total" gorm:"not null"`
	Currency  string         `json:"currency" gorm:"type:text;not null"`
	Status    Status         `json:"status" gorm:"type:text;not null"`
	PaidAt    *time.Time     `json:"paid_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Invoice) TableName() string { return "invoices" }
