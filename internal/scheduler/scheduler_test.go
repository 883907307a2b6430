package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	checkoutdomain "github.com/Sabyy027/hostel-core/internal/checkout/domain"
	checkoutrepo "github.com/Sabyy027/hostel-core/internal/checkout/repository"
	checkoutservice "github.com/Sabyy027/hostel-core/internal/checkout/service"
	"github.com/Sabyy027/hostel-core/internal/clock"
	"github.com/Sabyy027/hostel-core/internal/config"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestRunOnceExpiresStaleOrders(t *testing.T) {
	dsn := fmt.Sprintf("file:memdb_sched_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&checkoutdomain.Order{}, &checkoutdomain.ReconciliationFlag{}))

	node, err := snowflake.NewNode(40)
	require.NoError(t, err)

	start := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	fakeClock := clock.NewFakeClock(start)
	log := zap.NewNop()

	checkoutSvc := checkoutservice.NewService(checkoutservice.Params{
		DB:          db,
		Log:         log,
		GenID:       node,
		Clock:       fakeClock,
		Repo:        checkoutrepo.Provide(),
		Registry:    checkoutdomain.NewRegistry(),
		CheckoutCfg: config.NewStaticCheckoutConfigHolder(config.DefaultCheckoutConfig()),
	})

	stale := checkoutdomain.Order{
		ID:             node.Generate(),
		StudentID:      node.Generate(),
		Subject:        checkoutdomain.SubjectRoomBooking,
		TargetID:       node.Generate(),
		Amount:         1000,
		Currency:       "INR",
		Receipt:        "r1",
		GatewayOrderID: "order_stale",
		Status:         checkoutdomain.OrderStatusCreated,
		ExpiresAt:      start.Add(-time.Minute),
	}
	fresh := stale
	fresh.ID = node.Generate()
	fresh.Receipt = "r2"
	fresh.GatewayOrderID = "order_fresh"
	fresh.ExpiresAt = start.Add(time.Hour)
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&fresh).Error)

	sched, err := New(Params{Log: log, Clock: fakeClock, CheckoutSvc: checkoutSvc})
	require.NoError(t, err)
	require.NoError(t, sched.RunOnce(context.Background()))

	var got checkoutdomain.Order
	require.NoError(t, db.First(&got, "gateway_order_id = ?", "order_stale").Error)
	assert.Equal(t, checkoutdomain.OrderStatusExpired, got.Status)

	got = checkoutdomain.Order{}
	require.NoError(t, db.First(&got, "gateway_order_id = ?", "order_fresh").Error)
	assert.Equal(t, checkoutdomain.OrderStatusCreated, got.Status)
}

func TestNewRejectsMissingDeps(t *testing.T) {
	_, err := New(Params{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
