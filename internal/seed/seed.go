package seed

import (
	"context"
	"errors"
	"time"

	amenitydomain "github.com/Sabyy027/hostel-core/internal/amenity/domain"
	amenityrepo "github.com/Sabyy027/hostel-core/internal/amenity/repository"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	catalogrepo "github.com/Sabyy027/hostel-core/internal/catalog/repository"
	"github.com/Sabyy027/hostel-core/internal/pricing"
	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const demoBlockName = "Block A"

// EnsureDemoCatalog seeds a small bookable catalog for local development.
// It is idempotent: re-running against a seeded database is a no-op keyed
// on the demo block name.
func EnsureDemoCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing catalogdomain.Block
		err := tx.WithContext(ctx).Where("name = ?", demoBlockName).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		now := time.Now().UTC()
		if err := seedRooms(ctx, tx, node, now); err != nil {
			return err
		}
		return seedAmenities(ctx, tx, node, now)
	})
}

func seedRooms(ctx context.Context, tx *gorm.DB, node *snowflake.Node, now time.Time) error {
	repo := catalogrepo.Provide()

	block := catalogdomain.Block{
		ID:        node.Generate(),
		Name:      demoBlockName,
		CreatedAt: now,
	}
	if err := repo.InsertBlock(ctx, tx, &block); err != nil {
		return err
	}

	earlyBird := catalogdomain.Discount{
		ID:        node.Generate(),
		Name:      "Early bird",
		Type:      pricing.DiscountPercentage,
		Value:     10,
		Category:  "seasonal",
		CreatedAt: now,
	}
	if err := repo.InsertDiscount(ctx, tx, &earlyBird); err != nil {
		return err
	}

	rooms := []struct {
		floor    int
		number   string
		capacity int
		acType   catalogdomain.ACType
		bathroom catalogdomain.BathroomType
		discount *snowflake.ID
		prices   map[int]int64 // months -> paise
	}{
		{1, "A-101", 2, catalogdomain.ACTypeAC, catalogdomain.BathroomAttached, &earlyBird.ID, map[int]int64{6: 3600000, 12: 6600000}},
		{1, "A-102", 2, catalogdomain.ACTypeAC, catalogdomain.BathroomAttached, nil, map[int]int64{6: 3600000, 12: 6600000}},
		{1, "A-103", 3, catalogdomain.ACTypeNonAC, catalogdomain.BathroomShared, nil, map[int]int64{6: 2400000, 12: 4400000}},
		{2, "A-201", 4, catalogdomain.ACTypeNonAC, catalogdomain.BathroomShared, nil, map[int]int64{6: 1800000, 12: 3300000}},
		{2, "A-202", 1, catalogdomain.ACTypeAC, catalogdomain.BathroomAttached, &earlyBird.ID, map[int]int64{6: 5400000, 12: 9900000}},
	}

	for _, r := range rooms {
		room := catalogdomain.Room{
			ID:           node.Generate(),
			BlockID:      block.ID,
			Floor:        r.floor,
			Number:       r.number,
			Capacity:     r.capacity,
			ACType:       r.acType,
			BathroomType: r.bathroom,
			DiscountID:   r.discount,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := repo.InsertRoom(ctx, tx, &room); err != nil {
			return err
		}
		for months, price := range r.prices {
			plan := catalogdomain.PricingPlan{
				ID:        node.Generate(),
				RoomID:    room.ID,
				Duration:  months,
				Unit:      catalogdomain.PlanUnitMonths,
				Price:     price,
				CreatedAt: now,
			}
			if err := repo.InsertPlan(ctx, tx, &plan); err != nil {
				return err
			}
		}
	}
	return nil
}

func seedAmenities(ctx context.Context, tx *gorm.DB, node *snowflake.Node, now time.Time) error {
	repo := amenityrepo.Provide()

	amenities := []struct {
		name  string
		desc  string
		price int64
	}{
		{"Gym Pass", "Monthly access to the hostel gym", 120000},
		{"Laundry Plan", "Weekly laundry pickup and delivery", 60000},
		{"Mess Upgrade", "Premium mess menu for one month", 150000},
	}
	for _, a := range amenities {
		amenity := amenitydomain.Amenity{
			ID:          node.Generate(),
			Code:        slug.Make(a.name),
			Name:        a.name,
			Description: a.desc,
			Price:       a.price,
			Currency:    "INR",
			Active:      true,
			CreatedAt:   now,
		}
		if err := repo.Insert(ctx, tx, &amenity); err != nil {
			return err
		}
	}
	return nil
}
