package httpserver

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/xtding233/roll-odds/internal/pkg/oddserr"
)

func HandleCustomError(ctx *fiber.Ctx, e *oddserr.OddsError) error {
	log.Warn().
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}
	if e.Extras != nil {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var oe *oddserr.OddsError
	if errors.As(err, &oe) {
		return HandleCustomError(ctx, oe)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusNotFound {
			return HandleCustomError(ctx, oddserr.ErrNotFound.Msg("no route for %s %s", ctx.Method(), ctx.Path()))
		}
		// copy, the shared value must not be mutated
		re := *oddserr.ErrInternalError
		re.StatusCode = fe.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = fe.Message
		return HandleCustomError(ctx, &re)
	}

	re := *oddserr.ErrInternalError

	log.Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	return HandleCustomError(ctx, &re)
}
