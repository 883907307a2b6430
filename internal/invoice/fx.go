package invoice

import (
	"github.com/Sabyy027/hostel-core/internal/invoice/repository"
	"github.com/Sabyy027/hostel-core/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
