package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/xtding233/roll-odds/internal/config"
	"github.com/xtding233/roll-odds/internal/odds"
	"github.com/xtding233/roll-odds/internal/pkg/observability"
	"github.com/xtding233/roll-odds/internal/pkg/oddserr"
	"github.com/xtding233/roll-odds/internal/plan"
	"github.com/xtding233/roll-odds/internal/refdata"
	"github.com/xtding233/roll-odds/internal/server/svr"
)

var validate = validator.New()

type OddsController struct {
	fx.In

	Store  *refdata.Store
	Config *config.Config
}

func RegisterOdds(api *svr.API, c OddsController) {
	api.Get("/odds", c.GetOdds)
	api.Post("/odds", c.PostOdds)
	api.Get("/odds/simulate", c.GetSimulation)
	api.Get("/odds/plan", c.GetPlan)
	api.Get("/odds/curve", c.GetCurve)
	api.Get("/tables", c.GetTables)
}

type OddsResponse struct {
	Chance        float64        `json:"chance"`
	Message       string         `json:"message"`
	Breakdown     odds.Breakdown `json:"breakdown"`
	TablesVersion string         `json:"tablesVersion"`
}

// field accepts a JSON number or string and keeps its text for odds.ParseRequest.
type field string

func (f *field) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = field(s)
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	*f = field(b)
	return nil
}

type oddsBody struct {
	Level            field `json:"level"`
	Tier             field `json:"tier"`
	Gold             field `json:"gold"`
	UnitsRemoved     field `json:"unitsRemoved"`
	TierUnitsRemoved field `json:"tierUnitsRemoved"`
}

func (b oddsBody) raw() odds.RawRequest {
	return odds.RawRequest{
		Level:            string(b.Level),
		Tier:             string(b.Tier),
		Gold:             string(b.Gold),
		UnitsRemoved:     string(b.UnitsRemoved),
		TierUnitsRemoved: string(b.TierUnitsRemoved),
	}
}

func rawFromQuery(ctx *fiber.Ctx) odds.RawRequest {
	return odds.RawRequest{
		Level:            ctx.Query("level"),
		Tier:             ctx.Query("tier"),
		Gold:             ctx.Query("gold"),
		UnitsRemoved:     ctx.Query("unitsRemoved"),
		TierUnitsRemoved: ctx.Query("tierUnitsRemoved"),
	}
}

// translate maps domain errors onto transport errors. Validation detail is logged,
// never returned: players always get the same message.
func translate(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, odds.ErrValidation) {
		log.Debug().Err(err).Str("path", ctx.Path()).Msg("rejected odds input")
		return oddserr.ErrInvalidReq
	}
	return err
}

func (c *OddsController) compute(ctx *fiber.Ctx, raw odds.RawRequest) error {
	engine := c.Store.Engine()
	res, err := engine.ComputeRaw(raw)
	observability.Calculations.WithLabelValues("compute", observability.Outcome(err)).Inc()
	if err != nil {
		return translate(ctx, err)
	}

	return ctx.JSON(OddsResponse{
		Chance:        res.Percent,
		Message:       odds.Format(res),
		Breakdown:     res.Breakdown,
		TablesVersion: engine.Tables().Version,
	})
}

func (c *OddsController) GetOdds(ctx *fiber.Ctx) error {
	return c.compute(ctx, rawFromQuery(ctx))
}

func (c *OddsController) PostOdds(ctx *fiber.Ctx) error {
	var body oddsBody
	if err := ctx.BodyParser(&body); err != nil {
		log.Debug().Err(err).Msg("unreadable odds body")
		return oddserr.ErrInvalidReq
	}
	return c.compute(ctx, body.raw())
}

// intQuery reads an optional integer query parameter, checked against tag.
func intQuery(ctx *fiber.Ctx, key string, def int, tag string) (int, error) {
	s := strings.TrimSpace(ctx.Query(key))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, oddserr.ErrInvalidReq
	}
	if err := validate.Var(v, tag); err != nil {
		return 0, oddserr.ErrInvalidReq
	}
	return v, nil
}

func (c *OddsController) GetSimulation(ctx *fiber.Ctx) error {
	trials, err := intQuery(ctx, "trials", 10000, "min=1,max="+strconv.Itoa(c.Config.SimulationMaxTrials))
	if err != nil {
		return err
	}
	var rng odds.RandomSource
	if s := ctx.Query("seed"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return oddserr.ErrInvalidReq
		}
		rng = odds.NewSeededRNG(seed)
	}

	req, err := odds.ParseRequest(rawFromQuery(ctx))
	if err != nil {
		return translate(ctx, err)
	}

	start := time.Now()
	sim, err := c.Store.Engine().Simulate(req, trials, rng)
	observability.SimulationDuration.Observe(time.Since(start).Seconds())
	observability.Calculations.WithLabelValues("simulate", observability.Outcome(err)).Inc()
	if err != nil {
		return translate(ctx, err)
	}
	return ctx.JSON(sim)
}

func (c *OddsController) GetPlan(ctx *fiber.Ctx) error {
	maxGold, err := intQuery(ctx, "maxGold", c.Config.PlanMaxGold, "min=1,max="+strconv.Itoa(c.Config.PlanMaxGold))
	if err != nil {
		return err
	}
	target, err := strconv.ParseFloat(ctx.Query("target"), 64)
	if err != nil || validate.Var(target, "gt=0,lte=100") != nil {
		return oddserr.ErrInvalidReq
	}

	raw := rawFromQuery(ctx)
	if raw.Gold == "" {
		raw.Gold = strconv.Itoa(maxGold)
	}
	req, err := odds.ParseRequest(raw)
	if err != nil {
		return translate(ctx, err)
	}

	engine := c.Store.Engine()
	p, err := plan.MinGoldForChance(engine, req, target, maxGold)
	observability.Calculations.WithLabelValues("plan", observability.Outcome(err)).Inc()
	if errors.Is(err, plan.ErrUnreachable) {
		return oddserr.ErrUnreachable.WithExtras(oddserr.Extras{
			"maxGold":       maxGold,
			"tablesVersion": engine.Tables().Version,
		})
	}
	if err != nil {
		return translate(ctx, err)
	}
	return ctx.JSON(p)
}

func (c *OddsController) GetCurve(ctx *fiber.Ctx) error {
	engine := c.Store.Engine()
	perRoll := engine.Price().PerRoll
	from, err := intQuery(ctx, "from", engine.MinGold(), "min=0")
	if err != nil {
		return err
	}
	to, err := intQuery(ctx, "to", 100, "min=0")
	if err != nil {
		return err
	}
	step, err := intQuery(ctx, "step", perRoll, "min=1")
	if err != nil {
		return err
	}

	raw := rawFromQuery(ctx)
	if raw.Gold == "" {
		raw.Gold = strconv.Itoa(to)
	}
	req, err := odds.ParseRequest(raw)
	if err != nil {
		return translate(ctx, err)
	}

	points, err := plan.Curve(engine, req, from, to, step)
	observability.Calculations.WithLabelValues("curve", observability.Outcome(err)).Inc()
	if err != nil {
		return translate(ctx, err)
	}
	return ctx.JSON(points)
}

func (c *OddsController) GetTables(ctx *fiber.Ctx) error {
	return ctx.JSON(refdata.Unresolve(c.Store.Engine().Tables()))
}
