package milestone

import "go.uber.org/fx"

// Module exposes the milestone ledger via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
