package stats

import "go.uber.org/fx"

// Module exposes the engagement reporting service via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
