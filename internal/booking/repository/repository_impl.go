package repository

import (
	"context"
	"errors"

	"github.com/Sabyy027/hostel-core/internal/booking/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ActiveForStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) (*domain.Booking, error) {
	var booking domain.Booking
	err := db.WithContext(ctx).
		Where("student_id = ? AND status IN ?", studentID, []domain.Status{domain.StatusPending, domain.StatusConfirmed}).
		Order("created_at DESC").
		First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Booking, error) {
	var booking domain.Booking
	err := db.WithContext(ctx).First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, booking *domain.Booking) error {
	return db.WithContext(ctx).Create(booking).Error
}

func (r *repo) SetImageRef(ctx context.Context, db *gorm.DB, id snowflake.ID, imageRef string) error {
	res := db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("image_ref", imageRef)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}
