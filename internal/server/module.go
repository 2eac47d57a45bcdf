package server

import (
	"go.uber.org/fx"

	"github.com/xtding233/roll-odds/internal/server/httpserver"
	"github.com/xtding233/roll-odds/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups))
}
