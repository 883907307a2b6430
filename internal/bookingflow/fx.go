package bookingflow

import "go.uber.org/fx"

var Module = fx.Module("bookingflow",
	fx.Provide(NewManager),
)
