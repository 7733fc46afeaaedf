package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "gachasim",
		Usage: "simulate Endfield headhunting and arsenal banners",
		Commands: []*cli.Command{
			pullCommand(),
			statusCommand(),
			historyCommand(),
			grantCommand(),
			resetCommand(),
			simulateCommand(),
			planCommand(),
		},
		Before: setup,
		After:  teardown,
	}
	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("gachasim failed")
		os.Exit(1)
	}
}
