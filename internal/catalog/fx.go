package catalog

import (
	"github.com/Sabyy027/hostel-core/internal/catalog/repository"
	"github.com/Sabyy027/hostel-core/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
