package main

import "github.com/urfave/cli/v2"

const (
	flagCategory        = "category"
	flagCurrentPassword = "current-password"
	flagEmail           = "email"
	flagInsecure        = "insecure"
	flagNewPassword     = "new-password"
	flagOutput          = "output"
	flagPassword        = "password"
	flagQuery           = "query"
	flagServer          = "server"
	flagToken           = "token"
	flagUsername        = "username"
)

var (
	cliFlagOutput = &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage: "Return output in the specified format; supported formats: table, " +
			"yaml, json",
		Value: "table",
	}
	cliFlagServer = &cli.StringFlag{
		Name:    flagServer,
		Aliases: []string{"s"},
		Usage: "Use the GED API at the specified address instead of the one " +
			"saved at login",
	}
)
