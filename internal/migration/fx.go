package migration

import (
	amenitydomain "github.com/Sabyy027/hostel-core/internal/amenity/domain"
	bookingdomain "github.com/Sabyy027/hostel-core/internal/booking/domain"
	catalogdomain "github.com/Sabyy027/hostel-core/internal/catalog/domain"
	checkoutdomain "github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/Sabyy027/hostel-core/internal/config"
	invoicedomain "github.com/Sabyy027/hostel-core/internal/invoice/domain"
	"github.com/Sabyy027/hostel-core/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&catalogdomain.Block{},
				&catalogdomain.Room{},
				&catalogdomain.PricingPlan{},
				&catalogdomain.Discount{},
				&bookingdomain.Booking{},
				&invoicedomain.Invoice{},
				&amenitydomain.Amenity{},
				&amenitydomain.Activation{},
				&checkoutdomain.Order{},
				&checkoutdomain.ReconciliationFlag{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedDemo {
			return seed.EnsureDemoCatalog(conn)
		}
		return nil
	}),
)
