package activity

import (
	"github.com/dukastack/dukani/internal/activity/repository"
	"github.com/dukastack/dukani/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
