package domain

import (
	"time"

	"github.com/Sabyy027/hostel-core/internal/pricing"
	"github.com/bwmarrin/snowflake"
)

type ACType string

const (
	ACTypeAC    ACType = "AC"
	ACTypeNonAC ACType = "Non-AC"
)

type BathroomType string

const (
	BathroomAttached BathroomType = "Attached"
	BathroomShared   BathroomType = "Shared"
)

type PlanUnit string

const (
	PlanUnitMonths PlanUnit = "months"
	PlanUnitYears  PlanUnit = "years"
)

type Block struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"type:text;not null"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Block) TableName() string { return "blocks" }

type Room struct {
	ID           snowflake.ID  `json:"id" gorm:"primaryKey"`
	BlockID      snowflake.ID  `json:"block_id" gorm:"not null;index"`
	Floor        int           `json:"floor" gorm:"not null"`
	Number       string        `json:"number" gorm:"type:text;not null"`
	Capacity     int           `json:"capacity" gorm:"not null"`
	ACType       ACType        `json:"ac_type" gorm:"type:text;not null"`
	BathroomType BathroomType  `json:"bathroom_type" gorm:"type:text;not null"`
	Occupied     bool          `json:"occupied" gorm:"not null;default:false"`
	StaffOnly    bool          `json:"staff_only" gorm:"not null;default:false"`
	DiscountID   *snowflake.ID `json:"discount_id"`
	Discount     *Discount     `json:"discount,omitempty" gorm:"foreignKey:DiscountID"`
	Plans        []PricingPlan `json:"plans" gorm:"foreignKey:RoomID"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }

// PricingPlan is immutable once referenced by a completed booking; bookings
// snapshot the charged amount rather than pointing back at a mutable price.
type PricingPlan struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	RoomID    snowflake.ID `json:"room_id" gorm:"not null;index"`
	Duration  int          `json:"duration" gorm:"not null"`
	Unit      PlanUnit     `json:"unit" gorm:"type:text;not null"`
	Price     int64        `json:"price" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at"`
}

func (PricingPlan) TableName() string { return "pricing_plans" }

type Discount struct {
	ID        snowflake.ID         `json:"id" gorm:"primaryKey"`
	Name      string               `json:"name" gorm:"type:text;not null"`
	Type      pricing.DiscountType `json:"type" gorm:"type:text;not null"`
	Value     float64              `json:"value" gorm:"not null"`
	Category  string               `json:"category" gorm:"type:text"`
	CreatedAt time.Time            `json:"created_at"`
}

func (Discount) TableName() string { return "discounts" }

// Pricing converts the stored discount into the pricing engine's input.
func (d *Discount) Pricing() *pricing.Discount {
	if d == nil {
		return nil
	}
	return &pricing.Discount{Type: d.Type, Value: d.Value}
}

// Preferences filters the student-facing catalog. Zero values mean "no
// filter" at this layer; the booking flow requires both before listing.
type Preferences struct {
	ACType  ACType `json:"ac_type" form:"ac_type"`
	Sharing int    `json:"sharing" form:"sharing"`
}

// PlanQuote is a plan with its effective price precomputed.
type PlanQuote struct {
	PlanID         snowflake.ID `json:"plan_id"`
	Duration       int          `json:"duration"`
	Unit           PlanUnit     `json:"unit"`
	BasePrice      int64        `json:"base_price"`
	EffectivePrice int64        `json:"effective_price"`
}

// RoomView is a catalog row as presented to students. Rooms without plans
// stay visible but non-purchasable so catalog gaps are not hidden.
type RoomView struct {
	Room        Room        `json:"room"`
	Purchasable bool        `json:"purchasable"`
	Quotes      []PlanQuote `json:"quotes"`
}
