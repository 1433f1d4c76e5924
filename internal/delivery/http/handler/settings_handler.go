package handler

import (
	"skillified/internal/delivery/http/dto"
	"skillified/internal/pkg/response"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SettingsHandler struct {
	uc usecase.SettingsUsecase
}

func NewSettingsHandler(uc usecase.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{uc: uc}
}

func (h *SettingsHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me/settings", auth, h.Get)
	r.Put("/me/settings", auth, h.Update)
}

func (h *SettingsHandler) Get(c fiber.Ctx) error {
	view, err := h.uc.GetSettings(c.Context(), actorOf(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSettingsResponse(view, nil))
}

// Update submits the whole settings form. Unticked notification boxes are
// absent from the request and turn the preference off. A password change
// revokes existing sessions and returns a fresh token pair.
func (h *SettingsHandler) Update(c fiber.Ctx) error {
	var req dto.SettingsRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	res, err := h.uc.UpdateSettings(c.Context(), actorOf(c), req.Patch())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSettingsResponse(res.Settings, res.Tokens))
}
