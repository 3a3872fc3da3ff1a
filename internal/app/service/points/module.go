package points

import "go.uber.org/fx"

// Module exposes the XP award service via Fx.
var Module = fx.Options(
	fx.Provide(NewLedger),
	fx.Provide(NewService),
)
