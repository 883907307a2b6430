package seed

import (
	"fmt"
	"testing"
	"time"

	amenitydomain "github.com/Sabyy027/hostel-core/internal/amenity/domain"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_seed_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalogdomain.Block{},
		&catalogdomain.Room{},
		&catalogdomain.PricingPlan{},
		&catalogdomain.Discount{},
		&amenitydomain.Amenity{},
	))
	return db
}

func TestEnsureDemoCatalogIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, EnsureDemoCatalog(db))
	require.NoError(t, EnsureDemoCatalog(db))

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(1), count(&catalogdomain.Block{}))
	assert.Equal(t, int64(5), count(&catalogdomain.Room{}))
	assert.Equal(t, int64(10), count(&catalogdomain.PricingPlan{}))
	assert.Equal(t, int64(1), count(&catalogdomain.Discount{}))
	assert.Equal(t, int64(3), count(&amenitydomain.Amenity{}))
}

func TestEnsureDemoCatalogRequiresDB(t *testing.T) {
	assert.Error(t, EnsureDemoCatalog(nil))
}
