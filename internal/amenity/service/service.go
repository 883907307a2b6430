package service

import (
	"context"
	"strings"
	"time"

	"github.com/Sabyy027/hostel-core/internal/amenity/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func NewService(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("amenity.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Amenity, error) {
	return s.repo.ListActive(ctx, s.db)
}

func (s *Service) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Amenity, error) {
	return s.repo.FindByID(ctx, db, id)
}

// Create registers an amenity. The code is derived from the name so it is
// stable across renames of the display text.
func (s *Service) Create(ctx context.Context, name, description string, price int64, currency string) (*domain.Amenity, error) {
	amenity := &domain.Amenity{
		ID:          s.genID.Generate(),
		Code:        slug.Make(name),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		Currency:    strings.ToUpper(strings.TrimSpace(currency)),
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, s.db, amenity); err != nil {
		return nil, err
	}
	return amenity, nil
}

// Activate records a paid purchase within the caller's transaction.
func (s *Service) Activate(ctx context.Context, db *gorm.DB, studentID, amenityID snowflake.ID, invoiceID *snowflake.ID, at time.Time) (*domain.Activation, error) {
	activation := &domain.Activation{
		ID:          s.genID.Generate(),
		StudentID:   studentID,
		AmenityID:   amenityID,
		InvoiceID:   invoiceID,
		ActivatedAt: at,
	}
	if err := s.repo.InsertActivation(ctx, db, activation); err != nil {
		return nil, err
	}
	return activation, nil
}

func (s *Service) FindActivation(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Activation, error) {
	return s.repo.FindActivationByID(ctx, db, id)
}

func (s *Service) ActivationsForStudent(ctx context.Context, studentID snowflake.ID) ([]domain.Activation, error) {
	return s.repo.ListActivationsForStudent(ctx, s.db, studentID)
}
