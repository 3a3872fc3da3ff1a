package app

import (
	"github.com/gatherly/pulse/internal/app/api/server"
	"github.com/gatherly/pulse/internal/app/service/checkin"
	"github.com/gatherly/pulse/internal/app/service/milestone"
	"github.com/gatherly/pulse/internal/app/service/phase"
	"github.com/gatherly/pulse/internal/app/service/points"
	"github.com/gatherly/pulse/internal/app/service/stats"
	"github.com/gatherly/pulse/internal/platform/db"
	"github.com/gatherly/pulse/internal/platform/redisdb"
	"github.com/gatherly/pulse/pkg/config"
	"github.com/gatherly/pulse/pkg/logger"
	"time"

	"go.uber.org/fx"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	redisdb.Module,
	server.Module,
	checkin.Module,
	phase.Module,
	points.Module,
	milestone.Module,
	stats.Module,
)
