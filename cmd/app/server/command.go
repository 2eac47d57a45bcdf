package server

import (
	"github.com/urfave/cli/v2"

	"github.com/xtding233/roll-odds/internal/app"
	"github.com/xtding233/roll-odds/internal/config"
	"github.com/xtding233/roll-odds/internal/pkg/logger"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "start server",
		Action: func(c *cli.Context) error {
			conf, err := config.Parse()
			if err != nil {
				return err
			}
			// logger is configured outside of fx so construction errors are logged too
			logger.Configure(conf)

			app.New(conf).Run()
			return nil
		},
	}
}
