package main

import (
	"fmt"
	"os"

	"github.com/adcsa/ged/internal/signals"
	"github.com/adcsa/ged/internal/version"
	"github.com/golang/glog"
	"github.com/urfave/cli/v2"
)

func main() {
	defer glog.Flush()

	app := cli.NewApp()
	app.Name = "ged"
	app.Usage = "Work with the ADCSA document management system"
	app.Version = fmt.Sprintf(
		"%s -- commit %s",
		version.Version(),
		version.Commit(),
	)
	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    flagInsecure,
			Aliases: []string{"k"},
			Usage:   "Allow insecure API server connections when using TLS",
		},
	}
	app.Commands = []*cli.Command{
		dashboardCommand,
		loginCommand,
		logoutCommand,
		passwordCommand,
		whoamiCommand,
	}
	fmt.Println()
	if err := app.RunContext(signals.Context(), os.Args); err != nil {
		fmt.Printf("\n%s\n\n", err)
		os.Exit(1)
	}
	fmt.Println()
}
