package handler

import (
	"skillified/internal/delivery/http/dto"
	"skillified/internal/domain/event"
	"skillified/internal/pkg/response"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EventHandler struct {
	uc usecase.EventUsecase
}

func NewEventHandler(uc usecase.EventUsecase) *EventHandler {
	return &EventHandler{uc: uc}
}

func (h *EventHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/skills/:id/events", auth, h.Create)
	r.Put("/events/:id", auth, h.Edit)
	r.Delete("/events/:id", auth, h.Delete)
	r.Post("/events/:id/register", auth, h.Register)
	r.Post("/events/:id/unregister", auth, h.Unregister)
	r.Post("/events/:id/participation", auth, h.Participation)
}

func (h *EventHandler) Create(c fiber.Ctx) error {
	skillID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	created, err := h.uc.CreateEvent(c.Context(), actorOf(c), skillID, eventFields(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Event created successfully", dto.NewEventResponse(created))
}

func (h *EventHandler) Edit(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EventRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.uc.EditEvent(c.Context(), actorOf(c), id, eventFields(req))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEventResponse(updated))
}

func (h *EventHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteEvent(c.Context(), actorOf(c), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}

func (h *EventHandler) Register(c fiber.Ctx) error {
	return h.setParticipation(c, usecase.ActionRegister)
}

func (h *EventHandler) Unregister(c fiber.Ctx) error {
	return h.setParticipation(c, usecase.ActionUnregister)
}

func (h *EventHandler) Participation(c fiber.Ctx) error {
	var req dto.ParticipationRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	return h.setParticipation(c, req.Action)
}

func (h *EventHandler) setParticipation(c fiber.Ctx, action string) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	ev, err := h.uc.SetParticipation(c.Context(), actorOf(c), id, action)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEventResponse(ev))
}

func eventFields(req dto.EventRequest) event.Fields {
	return event.Fields{Title: req.Title, Overview: req.Overview, DateTime: req.DateTime}
}
