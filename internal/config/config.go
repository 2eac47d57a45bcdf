package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const envPrefix = "rollodds"

type Config struct {
	// ServiceAddress is the listen address would listen on for serving odds requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9010"`

	// DevMode to indicate development mode. When true, logs are written at trace level and
	// the server skips graceful shutdown.
	DevMode bool `split_words:"true"`

	// LogJSONStdout is whether to log JSON logs (instead of pretty-print logs) to stdout for the ease of log collection.
	LogJSONStdout bool `envconfig:"LOG_JSON_STDOUT" default:"false"`

	// LogFile is where a rotated copy of the logs is kept. Leave empty to disable file logging.
	LogFile string `split_words:"true" default:"logs/app.log"`

	// TablesPath is an optional YAML file layered over the built-in drop-rate and pool-size tables.
	TablesPath string `split_words:"true"`

	// TablesWatchInterval is how often TablesPath is polled for changes. Zero disables hot reload.
	TablesWatchInterval time.Duration `split_words:"true" default:"0"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `envconfig:"HTTP_SERVER_SHUTDOWN_TIMEOUT" required:"true" default:"60s"`

	// SimulationMaxTrials caps the trials a single simulation request may ask for.
	SimulationMaxTrials int `split_words:"true" default:"200000"`

	// PlanMaxGold caps the budget the gold planner searches.
	PlanMaxGold int `split_words:"true" default:"10000"`
}

// Parse reads configuration from the environment, after loading .env if present.
func Parse() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	var config Config
	if err := envconfig.Process(envPrefix, &config); err != nil {
		_ = envconfig.Usage(envPrefix, &config)
		return nil, errors.Wrap(err, "failed to parse configuration")
	}
	return &config, nil
}
