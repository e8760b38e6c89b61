package main

import (
	"fmt"
	"os"

	"github.com/tair/fuel-control/internal/cli"
	"github.com/tair/fuel-control/internal/config"
	"github.com/tair/fuel-control/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init("fuelctl", cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	if err := cli.RootCmd(cli.DatabaseLoader(cfg)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
