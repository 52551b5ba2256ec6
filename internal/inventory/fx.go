package inventory

import (
	"github.com/dukastack/dukani/internal/inventory/repository"
	"github.com/dukastack/dukani/internal/inventory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inventory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
