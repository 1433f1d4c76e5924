package handler

import (
	"strconv"
	"strings"

	"skillified/internal/delivery/http/dto"
	"skillified/internal/delivery/http/middleware"
	"skillified/internal/pkg/response"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CatalogHandler struct {
	uc usecase.CatalogUsecase
}

func NewCatalogHandler(uc usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// RegisterRoutes wires the read side of the catalog. Listings are public;
// detail pages require auth.
func (h *CatalogHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/skills", h.ListSkills)
	r.Get("/skills/popular", h.PopularSkills)
	r.Get("/events", h.ListEvents)

	r.Get("/skills/:id", auth, h.GetSkill)
	r.Get("/events/:id", auth, h.GetEvent)
}

func (h *CatalogHandler) ListSkills(c fiber.Ctx) error {
	var mentorOnly dto.Checkbox
	_ = mentorOnly.UnmarshalText([]byte(c.Query("mentor_only")))

	items, err := h.uc.ListSkills(c.Context(), usecase.SkillListParams{
		Query:      c.Query("q"),
		MentorOnly: mentorOnly.Bool(),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillList(items))
}

func (h *CatalogHandler) PopularSkills(c fiber.Ctx) error {
	limit := 0
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
		}
		limit = n
	}

	items, err := h.uc.PopularSkills(c.Context(), limit)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewPopularSkillList(items))
}

func (h *CatalogHandler) ListEvents(c fiber.Ctx) error {
	items, err := h.uc.ListEvents(c.Context(), usecase.EventListParams{
		Query:  c.Query("q"),
		OnDate: c.Query("event_date"),
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEventList(items))
}

func (h *CatalogHandler) GetSkill(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.GetSkill(c.Context(), actorOf(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillDetailResponse(detail))
}

func (h *CatalogHandler) GetEvent(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.uc.GetEvent(c.Context(), actorOf(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewEventDetailResponse(detail))
}
