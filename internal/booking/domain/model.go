package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
)

// ResidentDetails is captured once at confirmation and immutable after.
type ResidentDetails struct {
	FullName    string    `json:"full_name" gorm:"type:text;not null"`
	DOB         time.Time `json:"dob" gorm:"not null"`
	Gender      string    `json:"gender" gorm:"type:text;not null"`
	Mobile      string    `json:"mobile" gorm:"type:text;not null"`
	Street      string    `json:"street" gorm:"type:text;not null"`
	City        string    `json:"city" gorm:"type:text;not null"`
	State       string    `json:"state" gorm:"type:text;not null"`
	Pincode     string    `json:"pincode" gorm:"type:text;not null"`
	CheckInDate time.Time `json:"check_in_date" gorm:"not null"`
}

type Booking struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	StudentID snowflake.ID    `json:"student_id" gorm:"not null;index"`
	RoomID    snowflake.ID    `json:"room_id" gorm:"not null;index"`
	PlanID    snowflake.ID    `json:"plan_id" gorm:"not null"`
	Amount    int64           `json:"amount" gorm:"not null"`
	Currency  string          `json:"currency" gorm:"type:text;not null"`
	Status    Status          `json:"status" gorm:"type:text;not null"`
	Resident  ResidentDetails `json:"resident" gorm:"embedded;embeddedPrefix:resident_"`
	ImageRef  *string         `json:"image_ref,omitempty" gorm:"type:text"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }
