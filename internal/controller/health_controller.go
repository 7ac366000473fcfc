package controller

import (
	"ai-shopassist-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) IHealthController {
	return &healthController{db: db}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return serverutils.NewAppError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	if err := sqlDB.PingContext(ctx.Context()); err != nil {
		return serverutils.NewAppError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	return ctx.JSON(serverutils.SuccessResponse("ok", nil))
}
