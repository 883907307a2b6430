package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/Sabyy027/hostel-core/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertOrder(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByGatewayOrderID(ctx context.Context, db *gorm.DB, gatewayOrderID string) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).First(&order, "gateway_order_id = ?", gatewayOrderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repo) MarkPaid(ctx context.Context, db *gorm.DB, id snowflake.ID, paymentID string, confirmationID snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE checkout_orders
		 SET status = ?, payment_id = ?, confirmation_id = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		domain.OrderStatusPaid, paymentID, confirmationID, id, domain.OrderStatusCreated,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) MarkFailed(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	return r.flipFromCreated(ctx, db, id, domain.OrderStatusFailed)
}

func (r *repo) MarkExpired(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	return r.flipFromCreated(ctx, db, id, domain.OrderStatusExpired)
}

func (r *repo) flipFromCreated(ctx context.Context, db *gorm.DB, id snowflake.ID, to domain.OrderStatus) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE checkout_orders
		 SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND status = ?`,
		to, id, domain.OrderStatusCreated,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) ExpireOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE checkout_orders
		 SET status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE status = ? AND expires_at < ?`,
		domain.OrderStatusExpired, domain.OrderStatusCreated, cutoff,
	)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repo) InsertFlag(ctx context.Context, db *gorm.DB, flag *domain.ReconciliationFlag) error {
	return db.WithContext(ctx).Create(flag).Error
}

func (r *repo) ListOpenFlags(ctx context.Context, db *gorm.DB, before *pagination.Cursor, limit int) ([]domain.ReconciliationFlag, error) {
	q := db.WithContext(ctx).
		Where("resolved = ?", false).
		Order("id DESC").
		Limit(limit + 1)

	if before != nil && before.ID != "" {
		beforeID, err := snowflake.ParseString(before.ID)
		if err != nil {
			return nil, err
		}
		q = q.Where("id < ?", beforeID)
	}

	var flags []domain.ReconciliationFlag
	if err := q.Find(&flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}
