package expiry

import (
	"github.com/dukastack/dukani/internal/expiry/repository"
	"github.com/dukastack/dukani/internal/expiry/service"
	"go.uber.org/fx"
)

var Module = fx.Module("expiry.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
