package handler

import (
	"skillified/internal/delivery/http/dto"
	"skillified/internal/pkg/response"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/messages", auth, h.List)
	r.Post("/messages", auth, h.Send)
}

func (h *MessageHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), actorOf(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMessageList(items))
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	msg, err := h.uc.Send(c.Context(), actorOf(c), usecase.SendMessageInput{
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, response.MessageCreated, dto.NewMessageResponse(msg))
}
