package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Amenity is an ancillary service students can purchase, such as laundry
// or a gym pass.
type Amenity struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Code        string       `json:"code" gorm:"type:text;not null;uniqueIndex"`
	Name        string       `json:"name" gorm:"type:text;not null"`
	Description string       `json:"description" gorm:"type:text"`
	Price       int64        `json:"price" gorm:"not null"`
	Currency    string       `json:"currency" gorm:"type:text;not null"`
	Active      bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time    `json:"created_at"`
}

func (Amenity) TableName() string { return "amenities" }

// Activation records a paid amenity purchase.
type Activation struct {
	ID          snowflake.ID  `json:"id" gorm:"primaryKey"`
	StudentID   snowflake.ID  `json:"student_id" gorm:"not null;index"`
	AmenityID   snowflake.ID  `json:"amenity_id" gorm:"not null;index"`
	InvoiceID   *snowflake.ID `json:"invoice_id,omitempty"`
	ActivatedAt time.Time     `json:"activated_at" gorm:"not null"`
}

func (Activation) TableName() string { return "amenity_activations" }
