package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/dukastack/dukani/internal/config"
	"github.com/dukastack/dukani/internal/logger"
	"github.com/dukastack/dukani/internal/migration"
	"github.com/dukastack/dukani/internal/observability/metrics"
	"github.com/dukastack/dukani/internal/server"
	"github.com/dukastack/dukani/pkg/db"
)

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func main() {
	fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		metrics.Module,
		migration.Module,
		server.Module,
	).Run()
}
