package handler

import (
	"skillified/internal/delivery/http/dto"
	"skillified/internal/pkg/response"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ContactHandler struct {
	uc usecase.ContactUsecase
}

func NewContactHandler(uc usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{uc: uc}
}

func (h *ContactHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/contact", h.Submit)
}

func (h *ContactHandler) Submit(c fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	err := h.uc.Submit(c.Context(), usecase.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Reason:  req.Reason,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusAccepted, "Thank you for your message.", nil)
}
