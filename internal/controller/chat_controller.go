package controller

import (
	"errors"

	"emoticore-be/internal/constant"
	"emoticore-be/internal/dto"
	"emoticore-be/internal/pkg/serverutils"
	"emoticore-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler, limiter fiber.Handler)
	SendChat(ctx *fiber.Ctx) error
	GetAllSessions(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, auth fiber.Handler, limiter fiber.Handler) {
	r.Post("/chat", auth, limiter, c.SendChat)
	r.Get("/chat/sessions", auth, c.GetAllSessions)
	r.Get("/chat/sessions/:id/messages", auth, c.GetChatHistory)
	r.Delete("/chat/sessions/:id", auth, c.DeleteSession)
}

// SendChat keeps the flat {message, sessionId} / {error} bodies the chat
// client expects rather than the standard envelope.
func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	res, err := c.service.HandleTurn(ctx.UserContext(), serverutils.CurrentUserID(ctx), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		case errors.Is(err, service.ErrInvalidRequest):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
		case errors.Is(err, service.ErrInvalidSessionId):
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid sessionId"})
		case errors.Is(err, service.ErrSessionNotFound):
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
		default:
			return ctx.JSON(dto.SendChatResponse{Message: constant.ChatFallbackTechnical})
		}
	}

	return ctx.JSON(dto.SendChatResponse{
		Message:   res.Reply,
		SessionId: res.SessionId,
	})
}

func (c *chatController) GetAllSessions(ctx *fiber.Ctx) error {
	res, err := c.service.GetAllSessions(ctx.UserContext(), serverutils.CurrentUserID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.service.GetChatHistory(ctx.UserContext(), serverutils.CurrentUserID(ctx), sessionId)
	if err != nil {
		return mapSessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) DeleteSession(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	if err := c.service.DeleteSession(ctx.UserContext(), serverutils.CurrentUserID(ctx), sessionId); err != nil {
		return mapSessionError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func mapSessionError(err error) error {
	if errors.Is(err, service.ErrSessionNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Session not found")
	}
	return err
}
