package controller

import (
	"ai-shopassist-be/internal/dto"
	"ai-shopassist-be/internal/pkg/serverutils"
	"ai-shopassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Process(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService service.IQueryService
}

func NewQueryController(queryService service.IQueryService) IQueryController {
	return &queryController{
		queryService: queryService,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/widget/v1")
	h.Use(serverutils.WidgetJwtMiddleware)
	h.Post("query", c.Process)
}

func (c *queryController) Process(ctx *fiber.Ctx) error {
	siteIdStr, ok := ctx.Locals("site_id").(string)
	if !ok {
		return serverutils.NewAppError(fiber.StatusUnauthorized, "missing site scope")
	}
	siteId, err := uuid.Parse(siteIdStr)
	if err != nil {
		return serverutils.NewAppError(fiber.StatusUnauthorized, "invalid site scope")
	}

	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "malformed request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.queryService.Process(ctx.Context(), siteId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process query", res))
}
