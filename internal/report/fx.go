package report

import (
	"github.com/dukastack/dukani/internal/report/repository"
	"github.com/dukastack/dukani/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
