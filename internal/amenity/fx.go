package amenity

import (
	"github.com/Sabyy027/hostel-core/internal/amenity/repository"
	"github.com/Sabyy027/hostel-core/internal/amenity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("amenity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
