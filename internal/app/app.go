package app

import (
	"context"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/xtding233/roll-odds/internal/config"
	"github.com/xtding233/roll-odds/internal/controller"
	"github.com/xtding233/roll-odds/internal/pkg/logger"
	"github.com/xtding233/roll-odds/internal/refdata"
	"github.com/xtding233/roll-odds/internal/server"
)

// Options assembles the service graph without binding a listener.
func Options(conf *config.Config, additionalOpts ...fx.Option) []fx.Option {
	baseOpts := []fx.Option{
		// fx meta
		fx.WithLogger(logger.Fx),

		// Misc
		fx.Supply(conf),

		// Reference data
		fx.Provide(NewLoader),
		fx.Provide(refdata.NewStore),
		fx.Invoke(WatchTables),

		// Servers
		server.Module(),

		// Controllers
		controller.Module(),

		fx.StartTimeout(5 * time.Second),
		// fiber's Shutdown() honours IdleTimeout; this is the backstop.
		fx.StopTimeout(conf.HTTPServerShutdownTimeout + 5*time.Second),
	}

	return append(baseOpts, additionalOpts...)
}

// New builds the full service, listener included.
func New(conf *config.Config, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(conf, append(additionalOpts, fx.Invoke(Serve))...)...)
}

func NewLoader(conf *config.Config) *refdata.Loader {
	return refdata.NewLoader(conf.TablesPath)
}

// WatchTables hot-reloads the override tables while the app runs, when enabled.
func WatchTables(conf *config.Config, store *refdata.Store, lc fx.Lifecycle) {
	if conf.TablesPath == "" || conf.TablesWatchInterval <= 0 {
		return
	}
	// the start context expires once startup is done, so the watch needs its own
	watchCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().
				Str("path", conf.TablesPath).
				Dur("interval", conf.TablesWatchInterval).
				Msg("watching reference tables")
			store.Watch(watchCtx, conf.TablesWatchInterval)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			return nil
		},
	})
}

// Serve binds the fiber app to ServiceAddress for the lifetime of the fx app.
func Serve(app *fiber.App, conf *config.Config, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", conf.ServiceAddress)
			if err != nil {
				return err
			}
			log.Info().Str("address", ln.Addr().String()).Msg("serving odds")

			go func() {
				if err := app.Listener(ln); err != nil {
					log.Error().Err(err).Msg("server terminated unexpectedly")
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if conf.DevMode {
				return nil
			}
			return app.Shutdown()
		},
	})
}
