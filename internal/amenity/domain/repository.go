package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrAmenityNotFound = errors.New("amenity_not_found")
	ErrAmenityInactive = errors.New("amenity_inactive")
)

type Repository interface {
	ListActive(ctx context.Context, db *gorm.DB) ([]Amenity, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Amenity, error)
	Insert(ctx context.Context, db *gorm.DB, amenity *Amenity) error
	InsertActivation(ctx context.Context, db *gorm.DB, activation *Activation) error
	FindActivationByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Activation, error)
	ListActivationsForStudent(ctx context.Context, db *gorm.DB, studentID snowflake.ID) ([]Activation, error)
}
