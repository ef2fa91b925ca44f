package controller

import (
	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/pkg/serverutils"
	"chat-vector-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
}

type queryController struct {
	queryService service.IQueryService
}

func NewQueryController(queryService service.IQueryService) IQueryController {
	return &queryController{queryService: queryService}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	r.Post("/query", c.query)
}

func (c *queryController) query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	resp, err := c.queryService.Query(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}
