package handlers

import (
	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
	"github.com/TonyDastan/workwave/internal/transport/http/dto"
	httpmw "github.com/TonyDastan/workwave/internal/transport/http/middleware"
	"github.com/gofiber/fiber/v2"
)

type MessageHandler struct {
	service ports.MessageService
	logger  *logger.Logger
}

func NewMessageHandler(service ports.MessageService, logger *logger.Logger) *MessageHandler {
	return &MessageHandler{service: service, logger: logger}
}

func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if errs := req.Validate(); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: errs,
		})
	}

	actor := httpmw.CurrentActor(c)
	message, err := h.service.Send(c.Context(), actor.ID, req.ToInput())
	if err != nil {
		h.logger.Warnw("message_send_failed", "sender_id", actor.ID, "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageToResponse(message))
}

func (h *MessageHandler) GetConversations(c *fiber.Ctx) error {
	actor := httpmw.CurrentActor(c)
	summaries, err := h.service.Conversations(c.Context(), actor.ID)
	if err != nil {
		h.logger.Errorw("conversations_list_failed", "user_id", actor.ID, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.ConversationsToResponse(summaries))
}

func (h *MessageHandler) GetConversation(c *fiber.Ctx) error {
	peerID, err := parseID(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid user id",
		})
	}

	actor := httpmw.CurrentActor(c)
	messages, err := h.service.Conversation(c.Context(), actor.ID, peerID)
	if err != nil {
		h.logger.Errorw("conversation_fetch_failed", "user_id", actor.ID, "peer_id", peerID, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.MessagesToResponse(messages))
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	messageID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid message id",
		})
	}

	actor := httpmw.CurrentActor(c)
	if err := h.service.MarkRead(c.Context(), actor.ID, messageID); err != nil {
		h.logger.Warnw("message_mark_read_failed", "message_id", messageID, "error", err)
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Message: "message marked as read"})
}
