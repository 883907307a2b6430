package media

import (
	"go.uber.org/fx"
)

var Module = fx.Module("media.store",
	fx.Provide(NewStore),
)
