package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xtding233/roll-odds/internal/pkg/bininfo"
	"github.com/xtding233/roll-odds/internal/server/svr"
)

func RegisterMeta(api *svr.API) {
	meta := api.Group("/_")
	meta.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	meta.Get("/bininfo", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"version": bininfo.Version,
			"build":   bininfo.BuildTime,
		})
	})
}
