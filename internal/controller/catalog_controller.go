package controller

import (
	"crypto/subtle"
	"os"

	"ai-shopassist-be/internal/pkg/serverutils"
	"ai-shopassist-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	Renormalize(ctx *fiber.Ctx) error
}

// catalogController exposes operator-only catalog maintenance. The only
// operation is re-queueing a site's offers for normalization after the
// normalization rules change.
type catalogController struct {
	offerService service.IOfferService
}

func NewCatalogController(offerService service.IOfferService) ICatalogController {
	return &catalogController{
		offerService: offerService,
	}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Use(operatorKeyMiddleware)
	h.Post("sites/:siteId/renormalize", c.Renormalize)
}

func operatorKeyMiddleware(ctx *fiber.Ctx) error {
	expected := os.Getenv("OPERATOR_API_KEY")
	provided := ctx.Get("X-Operator-Key")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
		return serverutils.NewAppError(fiber.StatusUnauthorized, "operator key required")
	}
	return ctx.Next()
}

func (c *catalogController) Renormalize(ctx *fiber.Ctx) error {
	siteId, err := uuid.Parse(ctx.Params("siteId"))
	if err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid site id")
	}

	queued, err := c.offerService.RenormalizeSite(ctx.Context(), siteId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue renormalization", fiber.Map{
		"queued": queued,
	}))
}
