package controller

import (
	"chat-vector-be/internal/dto"
	"chat-vector-be/internal/pkg/serverutils"
	"chat-vector-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{chatService: chatService}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.sendChat)
	r.Get("/chats", c.getAllChats)
	r.Delete("/chats/:id", c.deleteChat)
	r.Post("/chats/restore", c.restoreChat)
}

func (c *chatController) sendChat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	resp, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}

func (c *chatController) getAllChats(ctx *fiber.Ctx) error {
	chats, err := c.chatService.GetAllChats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(chats)
}

func (c *chatController) deleteChat(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	resp, err := c.chatService.DeleteChat(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}

func (c *chatController) restoreChat(ctx *fiber.Ctx) error {
	var req dto.RestoreChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	resp, err := c.chatService.RestoreChat(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(resp)
}
