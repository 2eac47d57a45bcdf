package httpserver

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/roll-odds/internal/config"
	"github.com/xtding233/roll-odds/internal/pkg/bininfo"
	"github.com/xtding233/roll-odds/internal/pkg/observability"
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

func Create(conf *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Roll Odds",
		ServerHeader: fmt.Sprintf("RollOdds/%s", bininfo.Version),
		ReadTimeout:  time.Second * 20,
		WriteTimeout: time.Second * 20,
		// allow possibility for graceful shutdown, otherwise app#Shutdown() will block forever
		IdleTimeout:           conf.HTTPServerShutdownTimeout,
		ErrorHandler:          ErrorHandler,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		DisableStartupMessage: true,
	})

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			buf := make([]byte, 4096)
			buf = buf[:runtime.Stack(buf, false)]
			log.Error().Msgf("panic: %v\n%s\n", e, buf)
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET, POST, OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Use(accessLogger())

	// collectors live in the default registry, which accepts each name once
	promOnce.Do(func() {
		prom = fiberprometheus.New(observability.ServiceName)
	})
	prom.RegisterAt(app, "/metrics")
	app.Use(prom.Middleware)

	if conf.DevMode {
		log.Info().Msg("Running in DEV mode")
	}

	return app
}

func accessLogger() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()
		if err != nil {
			// let the error handler write the status before it is logged
			if herr := ctx.App().ErrorHandler(ctx, err); herr != nil {
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}
		log.Info().
			Str("component", "httpreq").
			Str("method", ctx.Method()).
			Str("url", ctx.OriginalURL()).
			Int("status", ctx.Response().StatusCode()).
			Int("size", len(ctx.Response().Body())).
			Dur("duration", time.Since(start)).
			Msg("received request")
		return nil
	}
}
