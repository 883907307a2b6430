package repository

import (
	"context"
	"errors"

	"github.com/Sabyy027/hostel-core/internal/catalog/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListBookableRooms(ctx context.Context, db *gorm.DB, prefs domain.Preferences) ([]domain.Room, error) {
	q := db.WithContext(ctx).
		Preload("Plans").
		Preload("Discount").
		Where("staff_only = ?", false).
		Where("occupied = ?", false)

	if prefs.ACType != "" {
		q = q.Where("ac_type = ?", prefs.ACType)
	}
	if prefs.Sharing > 0 {
		q = q.Where("capacity = ?", prefs.Sharing)
	}

	var rooms []domain.Room
	if err := q.Order("block_id, floor, number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repo) FindRoom(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Room, error) {
	var room domain.Room
	err := db.WithContext(ctx).
		Preload("Plans").
		Preload("Discount").
		First(&room, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repo) FindPlan(ctx context.Context, db *gorm.DB, roomID, planID snowflake.ID) (*domain.PricingPlan, error) {
	var plan domain.PricingPlan
	err := db.WithContext(ctx).
		First(&plan, "id = ? AND room_id = ?", planID, roomID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repo) ClaimRoom(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE rooms SET occupied = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND occupied = ?`,
		true, id, false,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repo) AttachDiscount(ctx context.Context, db *gorm.DB, roomID snowflake.ID, discountID *snowflake.ID) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE rooms SET discount_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		discountID, roomID,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRoomNotFound
	}
	return nil
}

func (r *repo) InsertBlock(ctx context.Context, db *gorm.DB, block *domain.Block) error {
	return db.WithContext(ctx).Create(block).Error
}

func (r *repo) InsertRoom(ctx context.Context, db *gorm.DB, room *domain.Room) error {
	return db.WithContext(ctx).Create(room).Error
}

func (r *repo) InsertPlan(ctx context.Context, db *gorm.DB, plan *domain.PricingPlan) error {
	return db.WithContext(ctx).Create(plan).Error
}

func (r *repo) InsertDiscount(ctx context.Context, db *gorm.DB, discount *domain.Discount) error {
	return db.WithContext(ctx).Create(discount).Error
}
