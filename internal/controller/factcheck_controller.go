package controller

import (
	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/pkg/serverutils"
	"chat-vector-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFactCheckController interface {
	RegisterRoutes(r fiber.Router)
}

type factCheckController struct {
	factCheckService service.IFactCheckService
}

func NewFactCheckController(factCheckService service.IFactCheckService) IFactCheckController {
	return &factCheckController{factCheckService: factCheckService}
}

func (c *factCheckController) RegisterRoutes(r fiber.Router) {
	r.Post("/factcheck", c.checkFacts)
}

func (c *factCheckController) checkFacts(ctx *fiber.Ctx) error {
	var req dto.FactCheckRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	resp, err := c.factCheckService.CheckFacts(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}
