package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/xtding233/roll-odds/cmd/app/calc"
	"github.com/xtding233/roll-odds/cmd/app/server"
	"github.com/xtding233/roll-odds/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "rollodds",
		Usage:       "shop roll odds calculator",
		Description: "Estimates the chance of finding a desired unit in the shop for a given level, tier, gold and pool depletion.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			calc.CalcCommand(),
			calc.SimulateCommand(),
			calc.PlanCommand(),
			calc.TablesCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
