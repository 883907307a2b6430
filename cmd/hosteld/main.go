package main

import (
	"github.com/Sabyy027/hostel-core/internal/amenity"
	"github.com/Sabyy027/hostel-core/internal/booking"
	"github.com/Sabyy027/hostel-core/internal/bookingflow"
	"github.com/Sabyy027/hostel-core/internal/catalog"
	"github.com/Sabyy027/hostel-core/internal/checkout"
	"github.com/Sabyy027/hostel-core/internal/clock"
	"github.com/Sabyy027/hostel-core/internal/config"
	"github.com/Sabyy027/hostel-core/internal/gateway"
	"github.com/Sabyy027/hostel-core/internal/invoice"
	"github.com/Sabyy027/hostel-core/internal/media"
	"github.com/Sabyy027/hostel-core/internal/migration"
	"github.com/Sabyy027/hostel-core/internal/observability"
	"github.com/Sabyy027/hostel-core/internal/ratelimit"
	"github.com/Sabyy027/hostel-core/internal/scheduler"
	"github.com/Sabyy027/hostel-core/internal/server"
	"github.com/Sabyy027/hostel-core/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(NewSnowflakeNode),
		db.Module,
		clock.Module,

		migration.Module,

		catalog.Module,
		booking.Module,
		invoice.Module,
		amenity.Module,
		gateway.Module,
		checkout.Module,
		bookingflow.Module,
		ratelimit.Module,
		media.Module,

		scheduler.Module,
		server.Module,
	)
	app.Run()
}

func NewSnowflakeNode(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.NodeID)
}
