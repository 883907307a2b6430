package repository

import (
	"context"
	"errors"

	"github.com/Sabyy027/hostel-core/internal/amenity/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) ListActive(ctx context.Context, db *gorm.DB) ([]domain.Amenity, error) {
	var amenities []domain.Amenity
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&amenities).Error
	if err != nil {
		return nil, err
	}
	return amenities, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Amenity, error) {
	var amenity domain.Amenity
	err := db.WithContext(ctx).First(&amenity, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &amenity, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, amenity *domain.Amenity) error {
	return db.WithContext(ctx).Create(amenity).Error
}

func (r *repo) InsertActivation(ctx context.Context, db *gorm.DB, activation *domain.Activation) error {
	return db.WithContext(ctx).Create(activation).Error
}

func (r *repo) FindActivationByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Activation, error) {
	var activation domain.Activation
	err := db.WithContext(ctx).First(&activation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &activation, nil
}

func (r *repo) ListActivationsForStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]domain.Activation, error) {
	var activations []domain.Activation
	err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("activated_at DESC").
		Find(&activations).Error
	if err != nil {
		return nil, err
	}
	return activations, nil
}
