package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/otomarket/otomarket/internal/clock"
	"github.com/otomarket/otomarket/internal/config"
	"github.com/otomarket/otomarket/internal/observability"
	"github.com/otomarket/otomarket/internal/providers/email"
	"github.com/otomarket/otomarket/internal/quota"
	"github.com/otomarket/otomarket/internal/records"
	"github.com/otomarket/otomarket/internal/server"
	"github.com/otomarket/otomarket/internal/verification"
	"github.com/otomarket/otomarket/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		clock.Module,
		db.Module,
		fx.Provide(newSnowflake),

		// Functional domains
		email.Module,
		records.Module,
		verification.Module,
		quota.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
