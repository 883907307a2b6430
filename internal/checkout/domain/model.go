package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	// OrderStatusCreated is an order waiting for verification. This is the
	// storage-side face of the flow's PaymentInitiated state.
	OrderStatusCreated OrderStatus = "created"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
	OrderStatusExpired OrderStatus = "expired"
)

type SubjectType string

const (
	SubjectRoomBooking SubjectType = "room_booking"
	SubjectInvoiceDue  SubjectType = "invoice_due"
	SubjectAmenity     SubjectType = "amenity"
)

// Order mirrors a gateway order locally. GatewayOrderID is the idempotency
// key: one verification may flip an order to paid, replays read the stored
// confirmation.
type Order struct {
	ID             snowflake.ID  `json:"id" gorm:"primaryKey"`
	StudentID      snowflake.ID  `json:"student_id" gorm:"not null;index"`
	Subject        SubjectType   `json:"subject" gorm:"type:text;not null"`
	TargetID       snowflake.ID  `json:"target_id" gorm:"not null"`
	PlanID         *snowflake.ID `json:"plan_id,omitempty"`
	Amount         int64         `json:"amount" gorm:"not null"`
	Currency       string        `json:"currency" gorm:"type:text;not null"`
	Receipt        string        `json:"receipt" gorm:"type:text;not null"`
	GatewayOrderID string        `json:"gateway_order_id" gorm:"type:text;not null;uniqueIndex"`
	Status         OrderStatus   `json:"status" gorm:"type:text;not null;index"`
	PaymentID      *string       `json:"payment_id,omitempty" gorm:"type:text"`
	ConfirmationID *snowflake.ID `json:"confirmation_id,omitempty"`
	ExpiresAt      time.Time     `json:"expires_at" gorm:"not null;index"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (Order) TableName() string { return "checkout_orders" }

// ReconciliationFlag records a payment the gateway captured that the
// system could not (or did not need to) turn into a fresh record. These
// are operational alerts, never silently dropped.
type ReconciliationFlag struct {
	ID             snowflake.ID   `json:"id" gorm:"primaryKey"`
	OrderID        snowflake.ID   `json:"order_id" gorm:"not null;index"`
	GatewayOrderID string         `json:"gateway_order_id" gorm:"type:text;not null"`
	PaymentID      string         `json:"payment_id" gorm:"type:text"`
	Reason         string         `json:"reason" gorm:"type:text;not null"`
	Details        datatypes.JSON `json:"details,omitempty"`
	Resolved       bool           `json:"resolved" gorm:"not null;default:false"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (ReconciliationFlag) TableName() string { return "reconciliation_flags" }

const (
	FlagReasonAlreadySatisfied = "already_satisfied"
	FlagReasonOrderExpired     = "order_expired"
	FlagReasonOrderUnclaimable = "order_unclaimable"
	FlagReasonDuplicatePayment = "duplicate_payment"
	FlagReasonConfirmFailed    = "confirm_failed"
)
