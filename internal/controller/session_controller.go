package controller

import (
	"errors"

	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/pkg/serverutils"
	"chat-vector-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{sessionService: sessionService}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	r.Get("/sessions", c.listSessions)
	r.Post("/sessions", c.createSession)
	r.Post("/sessions/restore", c.restoreSession)
	r.Get("/sessions/:id/messages", c.getMessages)
	r.Post("/sessions/:id/message", c.addMessage)
	r.Delete("/sessions/:id", c.deleteSession)
}

func (c *sessionController) listSessions(ctx *fiber.Ctx) error {
	sessions, err := c.sessionService.ListSessions(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(sessions)
}

func (c *sessionController) createSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	resp, err := c.sessionService.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

func (c *sessionController) getMessages(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	messages, err := c.sessionService.GetMessages(ctx.Context(), sessionId, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(messages)
}

func (c *sessionController) addMessage(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	var req dto.AddMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	resp, err := c.sessionService.AddMessage(ctx.Context(), sessionId, &req)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(resp)
}

func (c *sessionController) deleteSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	removeVectors := ctx.QueryBool("remove_vectors", true)

	resp, err := c.sessionService.DeleteSession(ctx.Context(), sessionId, removeVectors)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}

func (c *sessionController) restoreSession(ctx *fiber.Ctx) error {
	var req dto.RestoreSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	resp, err := c.sessionService.RestoreSession(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}
