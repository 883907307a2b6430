package booking

import (
	"github.com/Sabyy027/hostel-core/internal/booking/repository"
	"github.com/Sabyy027/hostel-core/internal/booking/service"
	"go.uber.org/fx"
)

var Module = fx.Module("booking.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
