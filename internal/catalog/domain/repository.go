package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrRoomOccupied     = errors.New("room_occupied")
	ErrPlanNotFound     = errors.New("plan_not_found")
	ErrDiscountNotFound = errors.New("discount_not_found")
)

type Repository interface {
	ListBookableRooms(ctx context.Context, db *gorm.DB, prefs Preferences) ([]Room, error)
	FindRoom(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Room, error)
	FindPlan(ctx context.Context, db *gorm.DB, roomID, planID snowflake.ID) (*PricingPlan, error)

	// ClaimRoom flips occupied false to true with a conditional update and
	// reports whether this caller won the claim.
	ClaimRoom(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)

	AttachDiscount(ctx context.Context, db *gorm.DB, roomID snowflake.ID, discountID *snowflake.ID) error

	InsertBlock(ctx context.Context, db *gorm.DB, block *Block) error
	InsertRoom(ctx context.Context, db *gorm.DB, room *Room) error
	InsertPlan(ctx context.Context, db *gorm.DB, plan *PricingPlan) error
	InsertDiscount(ctx context.Context, db *gorm.DB, discount *Discount) error
}
