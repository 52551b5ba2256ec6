package pdf

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Provider renders downloadable PDF reports.
type Provider struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Provider {
	return &Provider{log: log.Named("pdf.provider")}
}

var Module = fx.Module("pdf.provider",
	fx.Provide(New),
)
