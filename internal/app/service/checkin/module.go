package checkin

import (
	"go.uber.org/fx"

	"github.com/gatherly/pulse/internal/app/service/milestone"
	"github.com/gatherly/pulse/internal/app/service/points"
)

// Module exposes the check-in engine via Fx.
var Module = fx.Options(
	fx.Provide(NewUnlockSchedule),
	fx.Provide(NewRecordStore),
	fx.Provide(NewProfileMirror),
	fx.Provide(func(p *points.Service) PointAwarder { return p }),
	fx.Provide(func(m *milestone.Service) MilestoneRecorder { return m }),
	fx.Provide(NewService),
)
