package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Sabyy027/hostel-core/internal/amenity/domain"
	"github.com/Sabyy027/hostel-core/internal/amenity/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_amenity_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Amenity{}, &domain.Activation{}))

	node, err := snowflake.NewNode(8)
	require.NoError(t, err)

	svc := NewService(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, db
}

func TestCreateDerivesCodeFromName(t *testing.T) {
	svc, _ := newTestService(t)

	amenity, err := svc.Create(context.Background(), "Mess Upgrade", "Three meals", 3000, "inr")
	require.NoError(t, err)
	assert.Equal(t, "mess-upgrade", amenity.Code)
	assert.Equal(t, "INR", amenity.Currency)
	assert.True(t, amenity.Active)
}

func TestListActiveSkipsDisabled(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	active, err := svc.Create(ctx, "Gym Pass", "", 1200, "INR")
	require.NoError(t, err)

	retired, err := svc.Create(ctx, "Old Plan", "", 500, "INR")
	require.NoError(t, err)
	require.NoError(t, db.Model(&domain.Amenity{}).
		Where("id = ?", retired.ID).
		Update("active", false).Error)

	amenities, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, amenities, 1)
	assert.Equal(t, active.ID, amenities[0].ID)
}

func TestActivateRecordsPurchase(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	studentID := snowflake.ID(101)

	amenity, err := svc.Create(ctx, "Laundry Plan", "", 800, "INR")
	require.NoError(t, err)

	invoiceID := snowflake.ID(555)
	activatedAt := time.Now().UTC()
	activation, err := svc.Activate(ctx, db, studentID, amenity.ID, &invoiceID, activatedAt)
	require.NoError(t, err)

	listed, err := svc.ActivationsForStudent(ctx, studentID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, activation.ID, listed[0].ID)
	assert.Equal(t, amenity.ID, listed[0].AmenityID)
	require.NotNil(t, listed[0].InvoiceID)
	assert.Equal(t, invoiceID, *listed[0].InvoiceID)
}
