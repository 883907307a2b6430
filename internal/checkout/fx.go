package checkout

import (
	"github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/Sabyy027/hostel-core/internal/checkout/repository"
	"github.com/Sabyy027/hostel-core/internal/checkout/service"
	"github.com/Sabyy027/hostel-core/internal/checkout/subjects"
	"go.uber.org/fx"
)

var Module = fx.Module("checkout.service",
	fx.Provide(repository.Provide),
	fx.Provide(subjects.NewRoomBooking),
	fx.Provide(subjects.NewInvoiceDue),
	fx.Provide(subjects.NewAmenity),
	fx.Provide(func(room *subjects.RoomBooking, due *subjects.InvoiceDue, amenity *subjects.Amenity) *domain.Registry {
		return domain.NewRegistry(room, due, amenity)
	}),
	fx.Provide(service.NewService),
)
