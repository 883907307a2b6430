package domain

import (
	"context"
	"time"

	"github.com/Sabyy027/hostel-core/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	InsertOrder(ctx context.Context, db *gorm.DB, order *Order) error
	FindByGatewayOrderID(ctx context.Context, db *gorm.DB, gatewayOrderID string) (*Order, error)

	// MarkPaid flips created to paid, recording the payment and the
	// confirmation record. Reports whether this caller won the flip.
	MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paymentID string, confirmationID snowflake.ID) (bool, error)
	MarkFailed(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	MarkExpired(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)

	// ExpireOlderThan marks all created orders whose deadline passed and
	// returns how many were swept.
	ExpireOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)

	InsertFlag(ctx context.Context, db *gorm.DB, flag *ReconciliationFlag) error

	// ListOpenFlags pages newest-first by id. It fetches limit+1 rows so
	// the caller can tell whether another page follows; before, when set,
	// resumes after a previously served page.
	ListOpenFlags(ctx context.Context, db *gorm.DB, before *pagination.Cursor, limit int) ([]ReconciliationFlag, error)
}
