package service

import (
	"context"

	"github.com/Sabyy027/hostel-core/internal/catalog/domain"
	"github.com/Sabyy027/hostel-core/internal/pricing"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func NewService(p Params) *Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("catalog.service"),
		repo: p.Repo,
	}
}

// ListBookableRooms returns the filtered catalog with effective prices
// precomputed. Rooms without plans are returned non-purchasable rather
// than dropped.
func (s *Service) ListBookableRooms(ctx context.Context, prefs domain.Preferences) ([]domain.RoomView, error) {
	rooms, err := s.repo.ListBookableRooms(ctx, s.db, prefs)
	if err != nil {
		return nil, err
	}

	views := make([]domain.RoomView, 0, len(rooms))
	for i := range rooms {
		room := rooms[i]
		view := domain.RoomView{
			Room:        room,
			Purchasable: len(room.Plans) > 0,
			Quotes:      make([]domain.PlanQuote, 0, len(room.Plans)),
		}
		for _, plan := range room.Plans {
			view.Quotes = append(view.Quotes, quote(plan, room.Discount))
		}
		views = append(views, view)
	}
	return views, nil
}

// QuoteRoomPlan recomputes the price of a room+plan from current state.
// This is the only amount computation checkout trusts; client-supplied
// prices are never used.
func (s *Service) QuoteRoomPlan(ctx context.Context, db *gorm.DB, roomID, planID snowflake.ID) (*domain.PlanQuote, *domain.Room, error) {
	room, err := s.repo.FindRoom(ctx, db, roomID)
	if err != nil {
		return nil, nil, err
	}
	if room == nil || room.StaffOnly {
		return nil, nil, domain.ErrRoomNotFound
	}
	if room.Occupied {
		return nil, nil, domain.ErrRoomOccupied
	}

	plan, err := s.repo.FindPlan(ctx, db, roomID, planID)
	if err != nil {
		return nil, nil, err
	}
	if plan == nil {
		return nil, nil, domain.ErrPlanNotFound
	}

	q := quote(*plan, room.Discount)
	return &q, room, nil
}

// ClaimRoom exposes the occupancy compare-and-set for checkout's confirm
// transaction.
func (s *Service) ClaimRoom(ctx context.Context, db *gorm.DB, roomID snowflake.ID) (bool, error) {
	return s.repo.ClaimRoom(ctx, db, roomID)
}

// AttachDiscount replaces any discount currently attached to the room.
func (s *Service) AttachDiscount(ctx context.Context, roomID snowflake.ID, discountID *snowflake.ID) error {
	return s.repo.AttachDiscount(ctx, s.db, roomID, discountID)
}

func quote(plan domain.PricingPlan, discount *domain.Discount) domain.PlanQuote {
	return domain.PlanQuote{
		PlanID:         plan.ID,
		Duration:       plan.Duration,
		Unit:           plan.Unit,
		BasePrice:      plan.Price,
		EffectivePrice: pricing.EffectivePrice(plan.Price, discount.Pricing()),
	}
}
