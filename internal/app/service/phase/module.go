package phase

import (
	"go.uber.org/fx"

	"github.com/gatherly/pulse/internal/app/service/points"
)

// Module exposes the phase completion service via Fx.
var Module = fx.Options(
	fx.Provide(func(p *points.Service) PointAwarder { return p }),
	fx.Provide(NewService),
)
