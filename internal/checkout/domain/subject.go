package domain

import (
	"context"

	bookingdomain "github.com/Sabyy027/hostel-core/internal/booking/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// QuoteRequest identifies what is being bought.
type QuoteRequest struct {
	StudentID snowflake.ID
	TargetID  snowflake.ID
	PlanID    *snowflake.ID
}

// Quote is a server-computed charge. An empty Currency means the subject
// has no currency of its own and the checkout default applies.
type Quote struct {
	Amount   int64
	Currency string
}

type ConfirmRequest struct {
	StudentID snowflake.ID
	TargetID  snowflake.ID
	PlanID    *snowflake.ID
	Resident  *bookingdomain.ResidentDetails
}

// Confirmation is the record a paid order produced: a booking, a settled
// invoice, or an amenity activation.
type Confirmation struct {
	Subject  SubjectType  `json:"subject"`
	RecordID snowflake.ID `json:"record_id"`
	Record   any          `json:"record"`
}

// Subject is one money-flow behind the shared checkout protocol. All
// subjects share signature verification and order idempotency; each
// supplies its own amount computation and confirm side effect.
type Subject interface {
	Type() SubjectType

	// Quote recomputes the charge from current state. Client-supplied
	// prices are never trusted.
	Quote(ctx context.Context, db *gorm.DB, req QuoteRequest) (*Quote, error)

	// AlreadySatisfied reports whether the target is already paid or
	// booked, returning the existing record so a double-submit is a safe
	// no-op for the caller.
	AlreadySatisfied(ctx context.Context, db *gorm.DB, req ConfirmRequest) (*Confirmation, bool, error)

	// Confirm applies the subject's side effects inside the caller's
	// transaction.
	Confirm(ctx context.Context, tx *gorm.DB, order *Order, req ConfirmRequest) (*Confirmation, error)

	// Lookup rebuilds the confirmation for an idempotent replay.
	Lookup(ctx context.Context, db *gorm.DB, recordID snowflake.ID) (*Confirmation, error)
}

// Registry resolves subjects by type.
type Registry struct {
	subjects map[SubjectType]Subject
}

func NewRegistry(subjects ...Subject) *Registry {
	m := make(map[SubjectType]Subject, len(subjects))
	for _, s := range subjects {
		m[s.Type()] = s
	}
	return &Registry{subjects: m}
}

func (r *Registry) Get(t SubjectType) (Subject, bool) {
	s, ok := r.subjects[t]
	return s, ok
}
