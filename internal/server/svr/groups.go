package svr

import (
	"github.com/gofiber/fiber/v2"
)

// API is the router group every public endpoint hangs off.
type API struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) *API {
	return &API{Router: app.Group("/api")}
}
