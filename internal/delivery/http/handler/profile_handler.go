package handler

import (
	"mime/multipart"
	"strconv"
	"strings"

	"skillified/internal/delivery/http/dto"
	"skillified/internal/delivery/http/middleware"
	"skillified/internal/pkg/response"
	"skillified/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const pictureField = "profile_picture"

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me/profile", auth, h.Get)
	r.Patch("/me/profile", auth, h.Update)
	r.Delete("/me/profile/picture", auth, h.DeletePicture)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	view, err := h.uc.GetProfile(c.Context(), actorOf(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(view))
}

// Update accepts either a JSON body or a multipart form carrying the picture.
// Fields left out of the request are not touched.
func (h *ProfileHandler) Update(c fiber.Ctx) error {
	var (
		patch usecase.ProfilePatch
		err   error
	)
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		var file multipart.File
		patch, file, err = multipartPatch(c)
		if file != nil {
			defer file.Close()
		}
	} else {
		patch, err = jsonPatch(c)
	}
	if err != nil {
		return err
	}

	view, err := h.uc.UpdateProfile(c.Context(), actorOf(c), patch)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(view))
}

func (h *ProfileHandler) DeletePicture(c fiber.Ctx) error {
	view, err := h.uc.DeleteProfilePicture(c.Context(), actorOf(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(view))
}

func jsonPatch(c fiber.Ctx) (usecase.ProfilePatch, error) {
	var req dto.ProfilePatchRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return usecase.ProfilePatch{}, badRequest(err)
		}
	}
	return usecase.ProfilePatch{
		FacebookLink: req.FacebookLink,
		LinkedinLink: req.LinkedinLink,
		Email:        req.Email,
		AboutMe:      req.AboutMe,
		SkillIDs:     req.Skills,
	}, nil
}

func multipartPatch(c fiber.Ctx) (usecase.ProfilePatch, multipart.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return usecase.ProfilePatch{}, nil, badRequest(err)
	}

	patch := usecase.ProfilePatch{
		FacebookLink: formValue(form, "facebook_link"),
		LinkedinLink: formValue(form, "linkedin_link"),
		Email:        formValue(form, "email"),
		AboutMe:      formValue(form, "about_me"),
	}

	if raw, ok := form.Value["skills"]; ok {
		ids := make([]int64, 0, len(raw))
		for _, v := range raw {
			for _, part := range strings.Split(v, ",") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				id, err := strconv.ParseInt(part, 10, 64)
				if err != nil {
					return usecase.ProfilePatch{}, nil, middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageUnprocessableEntity,
						map[string]string{"skills": "Enter a whole number."}, err)
				}
				ids = append(ids, id)
			}
		}
		patch.SkillIDs = &ids
	}

	files := form.File[pictureField]
	if len(files) == 0 {
		return patch, nil, nil
	}
	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return usecase.ProfilePatch{}, nil, badRequest(err)
	}
	patch.Picture = &usecase.PictureUpload{Filename: fh.Filename, Reader: f}
	return patch, f, nil
}

func formValue(form *multipart.Form, key string) *string {
	vals, ok := form.Value[key]
	if !ok {
		return nil
	}
	v := ""
	if len(vals) > 0 {
		v = vals[0]
	}
	return &v
}
