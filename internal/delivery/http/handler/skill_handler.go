package handler

import (
	"skillified/internal/delivery/http/dto"
	"skillified/internal/pkg/response"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/mentor/skills", auth, h.MentorAdd)
	r.Put("/skills/:id", auth, h.Edit)
	r.Delete("/skills/:id", auth, h.Delete)

	r.Get("/me/skills", auth, h.ListMine)
	r.Post("/me/skills", auth, h.AddToProfile)
}

func (h *SkillHandler) MentorAdd(c fiber.Ctx) error {
	var req dto.SkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	in := usecase.MentorSkillInput{Name: req.Name}
	if req.Description != nil {
		in.Description = *req.Description
	}
	created, err := h.uc.MentorAddSkill(c.Context(), actorOf(c), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, "Skill created successfully", dto.NewSkillResponse(created))
}

func (h *SkillHandler) AddToProfile(c fiber.Ctx) error {
	var req dto.SkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	added, err := h.uc.AddSkillToProfile(c.Context(), actorOf(c), usecase.AddSkillInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, response.MessageCreated, dto.NewSkillResponse(added))
}

func (h *SkillHandler) ListMine(c fiber.Ctx) error {
	items, err := h.uc.ListProfileSkills(c.Context(), actorOf(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillList(items))
}

func (h *SkillHandler) Edit(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.EditSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	updated, err := h.uc.EditSkill(c.Context(), actorOf(c), id, usecase.EditSkillInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSkillResponse(updated))
}

func (h *SkillHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteSkill(c.Context(), actorOf(c), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageDeleted, nil)
}
