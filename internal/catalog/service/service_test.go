package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	catalogrepo "github.com/Sabyy027/hostel-core/internal/catalog/repository"
	catalogservice "github.com/Sabyy027/hostel-core/internal/catalog/service"
	"github.com/Sabyy027/hostel-core/internal/pricing"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_catalog_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	err = db.AutoMigrate(
		&catalogdomain.Block{},
		&catalogdomain.Room{},
		&catalogdomain.PricingPlan{},
		&catalogdomain.Discount{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  *catalogservice.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	node, err := snowflake.NewNode(20)
	require.NoError(t, err)

	db := setupTestDB(t)
	svc := catalogservice.NewService(catalogservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: catalogrepo.Provide(),
	})
	return &fixture{db: db, node: node, svc: svc}
}

func (f *fixture) addRoom(t *testing.T, room catalogdomain.Room, plans ...catalogdomain.PricingPlan) catalogdomain.Room {
	t.Helper()

	room.ID = f.node.Generate()
	if room.BlockID == 0 {
		room.BlockID = f.node.Generate()
	}
	require.NoError(t, f.db.Create(&room).Error)
	for _, plan := range plans {
		plan.ID = f.node.Generate()
		plan.RoomID = room.ID
		require.NoError(t, f.db.Create(&plan).Error)
	}
	return room
}

func (f *fixture) addDiscount(t *testing.T, d catalogdomain.Discount) catalogdomain.Discount {
	t.Helper()

	d.ID = f.node.Generate()
	require.NoError(t, f.db.Create(&d).Error)
	return d
}

func TestListBookableRoomsFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	match := f.addRoom(t, catalogdomain.Room{
		Number: "A-101", Capacity: 2, ACType: catalogdomain.ACTypeAC,
		BathroomType: catalogdomain.BathroomAttached,
	}, catalogdomain.PricingPlan{Duration: 12, Unit: catalogdomain.PlanUnitMonths, Price: 50000})

	f.addRoom(t, catalogdomain.Room{
		Number: "A-102", Capacity: 3, ACType: catalogdomain.ACTypeAC,
		BathroomType: catalogdomain.BathroomAttached,
	}, catalogdomain.PricingPlan{Duration: 12, Unit: catalogdomain.PlanUnitMonths, Price: 40000})

	f.addRoom(t, catalogdomain.Room{
		Number: "A-103", Capacity: 2, ACType: catalogdomain.ACTypeNonAC,
		BathroomType: catalogdomain.BathroomShared,
	}, catalogdomain.PricingPlan{Duration: 12, Unit: catalogdomain.PlanUnitMonths, Price: 30000})

	f.addRoom(t, catalogdomain.Room{
		Number: "W-01", Capacity: 2, ACType: catalogdomain.ACTypeAC,
		BathroomType: catalogdomain.BathroomAttached, StaffOnly: true,
	}, catalogdomain.PricingPlan{Duration: 12, Unit: catalogdomain.PlanUnitMonths, Price: 10000})

	f.addRoom(t, catalogdomain.Room{
		Number: "A-104", Capacity: 2, ACType: catalogdomain.ACTypeAC,
		BathroomType: catalogdomain.BathroomAttached, Occupied: true,
	}, catalogdomain.PricingPlan{Duration: 12, Unit: catalogdomain.PlanUnitMonths, Price: 50000})

	views, err := f.svc.ListBookableRooms(ctx, catalogdomain.Preferences{
		ACType:  catalogdomain.ACTypeAC,
		Sharing: 2,
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, match.ID, views[0].Room.ID)
	assert.True(t, views[0].Purchasable)
}

func TestListBookableRoomsAppliesPercentageDiscount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d := f.addDiscount(t, catalogdomain.Discount{
		Name: "Early bird", Type: pricing.DiscountPercentage, Value: 10,
	})
	room := f.addRoom(t, catalogdomain.Room{
		Number: "B-201", Capacity: 2, ACType: catalogdomain.ACTypeAC,
		BathroomType: catalogdomain.BathroomAttached, DiscountID: &d.ID,
	}, catalogdomain.PricingPlan{Duration: 1, Unit: catalogdomain.PlanUnitYears, Price: 50000})

	views, err := f.svc.ListBookableRooms(ctx, catalogdomain.Preferences{
		ACType:  catalogdomain.ACTypeAC,
		Sharing: 2,
	})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, room.ID, views[0].Room.ID)
	require.Len(t, views[0].Quotes, 1)
	assert.Equal(t, int64(50000), views[0].Quotes[0].BasePrice)
	assert.Equal(t, int64(45000), views[0].Quotes[0].EffectivePrice)
}

func TestListBookableRoomsFlagsRoomsWithoutPlans(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.addRoom(t, catalogdomain.Room{
		Number: "C-301", Capacity: 4, ACType: catalogdomain.ACTypeNonAC,
		BathroomType: catalogdomain.BathroomShared,
	})

	views, err := f.svc.ListBookableRooms(ctx, catalogdomain.Preferences{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Purchasable)
	assert.Empty(t, views[0].Quotes)
}

func TestQuoteRoomPlan(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d := f.addDiscount(t, catalogdomain.Discount{
		Name: "Flat", Type: pricing.DiscountFixed, Value: 5000,
	})
	room := f.addRoom(t, catalogdomain.Room{
		Number: "D-401", Capacity: 2, ACType: catalogdomain.ACTypeAC,
		BathroomType: catalogdomain.BathroomAttached, DiscountID: &d.ID,
	}, catalogdomain.PricingPlan{Duration: 6, Unit: catalogdomain.PlanUnitMonths, Price: 30000})

	var plan catalogdomain.PricingPlan
	require.NoError(t, f.db.First(&plan, "room_id = ?", room.ID).Error)

	q, got, err := f.svc.QuoteRoomPlan(ctx, f.db, room.ID, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, got.ID)
	assert.Equal(t, int64(25000), q.EffectivePrice)

	_, _, err = f.svc.QuoteRoomPlan(ctx, f.db, room.ID, f.node.Generate())
	assert.ErrorIs(t, err, catalogdomain.ErrPlanNotFound)

	_, _, err = f.svc.QuoteRoomPlan(ctx, f.db, f.node.Generate(), plan.ID)
	assert.ErrorIs(t, err, catalogdomain.ErrRoomNotFound)
}

func TestQuoteRoomPlanRejectsOccupiedRoom(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	room := f.addRoom(t, catalogdomain.Room{
		Number: "E-501", Capacity: 2, ACType: catalogdomain.ACTypeAC,
		BathroomType: catalogdomain.BathroomAttached, Occupied: true,
	}, catalogdomain.PricingPlan{Duration: 12, Unit: catalogdomain.PlanUnitMonths, Price: 20000})

	var plan catalogdomain.PricingPlan
	require.NoError(t, f.db.First(&plan, "room_id = ?", room.ID).Error)

	_, _, err := f.svc.QuoteRoomPlan(ctx, f.db, room.ID, plan.ID)
	assert.ErrorIs(t, err, catalogdomain.ErrRoomOccupied)
}

func TestClaimRoomWinsOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	room := f.addRoom(t, catalogdomain.Room{
		Number: "F-601", Capacity: 1, ACType: catalogdomain.ACTypeNonAC,
		BathroomType: catalogdomain.BathroomShared,
	}, catalogdomain.PricingPlan{Duration: 12, Unit: catalogdomain.PlanUnitMonths, Price: 15000})

	won, err := f.svc.ClaimRoom(ctx, f.db, room.ID)
	require.NoError(t, err)
	assert.True(t, won)

	won, err = f.svc.ClaimRoom(ctx, f.db, room.ID)
	require.NoError(t, err)
	assert.False(t, won)
}
