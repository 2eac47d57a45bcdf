package calc

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/xtding233/roll-odds/internal/odds"
	"github.com/xtding233/roll-odds/internal/plan"
	"github.com/xtding233/roll-odds/internal/refdata"
)

var tablesFlag = &cli.StringFlag{
	Name:    "tables",
	Usage:   "YAML file layered over the built-in tables",
	EnvVars: []string{"ROLLODDS_TABLES_PATH"},
}

// requestFlags mirror the five calculator fields. They stay strings so the
// command line goes through the same parsing as any other input.
func requestFlags(withGold bool) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "player level (3-11)"},
		&cli.StringFlag{Name: "tier", Aliases: []string{"t"}, Usage: "tier of the desired unit (1-5)"},
		&cli.StringFlag{Name: "units-removed", Value: "0", Usage: "copies of the desired unit already taken"},
		&cli.StringFlag{Name: "tier-units-removed", Value: "0", Usage: "copies of any unit of that tier already taken"},
		tablesFlag,
	}
	if withGold {
		flags = append(flags, &cli.StringFlag{Name: "gold", Aliases: []string{"g"}, Usage: "gold to spend on rolls"})
	}
	return flags
}

func rawRequest(c *cli.Context) odds.RawRequest {
	return odds.RawRequest{
		Level:            c.String("level"),
		Tier:             c.String("tier"),
		Gold:             c.String("gold"),
		UnitsRemoved:     c.String("units-removed"),
		TierUnitsRemoved: c.String("tier-units-removed"),
	}
}

func loadEngine(c *cli.Context) (*odds.Engine, error) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(zerolog.InfoLevel)

	store, err := refdata.NewStore(refdata.NewLoader(c.String("tables")))
	if err != nil {
		return nil, err
	}
	return store.Engine(), nil
}

// failed prints the player-facing validation message and exits non-zero.
func failed(w io.Writer, err error) error {
	log.Debug().Err(err).Msg("rejected input")
	fmt.Fprintln(w, odds.ValidationMessage)
	return cli.Exit("", 1)
}

func CalcCommand() *cli.Command {
	return &cli.Command{
		Name:  "calc",
		Usage: "print the chance to hit a desired unit",
		Flags: append(requestFlags(true), &cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "also print the intermediate values"}),
		Action: func(c *cli.Context) error {
			engine, err := loadEngine(c)
			if err != nil {
				return err
			}
			w := c.App.Writer

			res, err := engine.ComputeRaw(rawRequest(c))
			if err != nil {
				return failed(w, err)
			}
			fmt.Fprintln(w, odds.Format(res))
			if c.Bool("verbose") {
				b := res.Breakdown
				fmt.Fprintf(w, "rolls=%d goldLeftOver=%d baseOdds=%.2f poolSize=%d available=%d tierPool=%d perRoll=%.6f\n",
					b.Rolls, b.GoldLeftOver, b.BaseOdds, b.PoolSize, b.AvailableUnits, b.TotalUnitsInTierPool, b.PerSlotUnitChance)
			}
			return nil
		},
	}
}

func SimulateCommand() *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "cross-check the chance with a Monte Carlo run",
		Flags: append(requestFlags(true),
			&cli.IntFlag{Name: "trials", Value: 100000, Usage: "number of simulated shopping sessions"},
			&cli.Uint64Flag{Name: "seed", Usage: "seed for a repeatable run; 0 draws a fresh one"},
		),
		Action: func(c *cli.Context) error {
			engine, err := loadEngine(c)
			if err != nil {
				return err
			}
			w := c.App.Writer

			req, err := odds.ParseRequest(rawRequest(c))
			if err != nil {
				return failed(w, err)
			}
			var rng odds.RandomSource
			if seed := c.Uint64("seed"); seed != 0 {
				rng = odds.NewSeededRNG(seed)
			}
			sim, err := engine.Simulate(req, c.Int("trials"), rng)
			if err != nil {
				return failed(w, err)
			}
			fmt.Fprintf(w, "expected %.2f%%, simulated %.2f%% (%d/%d)\n", sim.Expected, sim.Percent, sim.Hits, sim.Trials)
			if sim.Hits > 0 {
				s := sim.RollsToFirst
				fmt.Fprintf(w, "rolls to first hit: mean %.2f, p50 %.0f, p90 %.0f, p99 %.0f\n", s.Mean, s.P50, s.P90, s.P99)
			}
			return nil
		},
	}
}

func PlanCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "find the least gold that reaches a target chance",
		Flags: append(requestFlags(false),
			&cli.Float64Flag{Name: "target", Value: 50, Usage: "target chance in percent"},
			&cli.IntFlag{Name: "max-gold", Value: 1000, Usage: "largest budget to consider"},
		),
		Action: func(c *cli.Context) error {
			engine, err := loadEngine(c)
			if err != nil {
				return err
			}
			w := c.App.Writer

			raw := rawRequest(c)
			raw.Gold = fmt.Sprint(c.Int("max-gold"))
			req, err := odds.ParseRequest(raw)
			if err != nil {
				return failed(w, err)
			}
			p, err := plan.MinGoldForChance(engine, req, c.Float64("target"), c.Int("max-gold"))
			switch {
			case errors.Is(err, plan.ErrUnreachable):
				fmt.Fprintf(w, "%.2f%% is not reachable with %d gold\n", c.Float64("target"), c.Int("max-gold"))
				return cli.Exit("", 1)
			case err != nil:
				return failed(w, err)
			}
			fmt.Fprintf(w, "%d gold (%d rolls) reaches %.2f%%\n", p.Gold, p.Rolls, p.Chance)
			return nil
		},
	}
}

func TablesCommand() *cli.Command {
	return &cli.Command{
		Name:  "tables",
		Usage: "print the active reference tables as YAML",
		Flags: []cli.Flag{tablesFlag},
		Action: func(c *cli.Context) error {
			engine, err := loadEngine(c)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(c.App.Writer)
			enc.SetIndent(2)
			if err := enc.Encode(refdata.Unresolve(engine.Tables())); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
