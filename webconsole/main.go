package main

import (
	"flag"

	"github.com/adcsa/ged/internal/signals"
	"github.com/adcsa/ged/internal/version"
	"github.com/golang/glog"
	"github.com/joho/godotenv"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	glog.Infof(
		"Starting GED Console -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	// A .env file is optional; the environment always wins.
	if err := godotenv.Load(); err == nil {
		glog.V(1).Info("loaded settings from .env")
	}

	ctx := signals.Context()

	console, err := getConsoleFromEnvironment(ctx)
	if err != nil {
		glog.Fatal(err)
	}

	go console.registry.Run(ctx, console.sweepPeriod)

	if err := console.server.ListenAndServe(ctx); err != nil {
		glog.Fatal(err)
	}
	glog.Info("GED Console stopped")
}
