package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"skillified/internal/domain"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
	"skillified/internal/repository"

	"github.com/asaskevich/govalidator"
	"go.uber.org/zap"
)

// PictureStore keeps uploaded profile pictures outside the relational store.
type PictureStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
	URL(ref string) string
}

type PictureUpload struct {
	Filename string
	Reader   io.Reader
}

// ProfilePatch lists the fields of a profile update. Nil fields are left
// untouched; a non-nil empty string clears the field.
type ProfilePatch struct {
	Picture      *PictureUpload
	FacebookLink *string
	LinkedinLink *string
	Email        *string
	AboutMe      *string
	SkillIDs     *[]int64
}

type ProfileView struct {
	User       user.User
	Profile    user.Profile
	Skills     []skill.Skill
	PictureURL string
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, actor domain.Actor) (ProfileView, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, patch ProfilePatch) (ProfileView, error)
	DeleteProfilePicture(ctx context.Context, actor domain.Actor) (ProfileView, error)
}

type Profiles struct {
	store       repository.Store
	pictures    PictureStore
	invalidator *CatalogInvalidator
	logger      *zap.Logger
}

func NewProfileUsecase(store repository.Store, pictures PictureStore, invalidator *CatalogInvalidator, logger *zap.Logger) *Profiles {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiles{store: store, pictures: pictures, invalidator: invalidator, logger: logger}
}

func (u *Profiles) GetProfile(ctx context.Context, actor domain.Actor) (ProfileView, error) {
	if err := requireAuthenticated(actor); err != nil {
		return ProfileView{}, err
	}
	return u.load(ctx, u.store, actor.UserID)
}

func (u *Profiles) load(ctx context.Context, st repository.Store, userID int64) (ProfileView, error) {
	usr, err := st.Users().GetByID(ctx, userID)
	if err != nil {
		return ProfileView{}, translate(err, userID)
	}
	p, err := st.Profiles().Ensure(ctx, userID)
	if err != nil {
		return ProfileView{}, translate(err, userID)
	}
	skills, err := st.Profiles().ListSkills(ctx, userID)
	if err != nil {
		return ProfileView{}, internalError(err)
	}
	return ProfileView{
		User:       usr.Sanitized(),
		Profile:    p,
		Skills:     skills,
		PictureURL: u.pictureURL(p.PictureRef),
	}, nil
}

func (u *Profiles) pictureURL(ref string) string {
	if ref == "" || u.pictures == nil {
		return ""
	}
	return u.pictures.URL(ref)
}

func validateProfilePatch(patch ProfilePatch) error {
	verr := &domain.ValidationError{}
	checkLink := func(field string, v *string) {
		if v == nil {
			return
		}
		if s := strings.TrimSpace(*v); s != "" && !govalidator.IsURL(s) {
			verr.Add(field, msgInvalidURL)
		}
	}
	checkLink("facebook_link", patch.FacebookLink)
	checkLink("linkedin_link", patch.LinkedinLink)
	if patch.Email != nil {
		if s := strings.TrimSpace(*patch.Email); s != "" && !govalidator.IsEmail(s) {
			verr.Add("email", domain.MsgInvalidEmail)
		}
	}
	if patch.Picture != nil && patch.Picture.Reader == nil {
		verr.Add("profile_picture", domain.MsgFieldRequired)
	}
	return verr.OrNil()
}

func (u *Profiles) UpdateProfile(ctx context.Context, actor domain.Actor, patch ProfilePatch) (ProfileView, error) {
	if err := requireAuthenticated(actor); err != nil {
		return ProfileView{}, err
	}
	if err := validateProfilePatch(patch); err != nil {
		return ProfileView{}, err
	}

	// The file is written first; a failed transaction removes it again.
	var newRef string
	if patch.Picture != nil {
		if u.pictures == nil {
			return ProfileView{}, internalError(errNoPictureStore)
		}
		ref, err := u.pictures.Save(ctx, patch.Picture.Filename, patch.Picture.Reader)
		if err != nil {
			if errors.Is(err, domain.ErrValidation) {
				return ProfileView{}, err
			}
			return ProfileView{}, internalError(err)
		}
		newRef = ref
	}

	var (
		oldRef string
		view   ProfileView
	)
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		usr, err := tx.Users().GetByID(ctx, actor.UserID)
		if err != nil {
			return translate(err, actor.UserID)
		}
		p, err := tx.Profiles().Ensure(ctx, actor.UserID)
		if err != nil {
			return translate(err, actor.UserID)
		}

		if patch.SkillIDs != nil {
			for _, id := range *patch.SkillIDs {
				if _, err := tx.Skills().GetByID(ctx, id); err != nil {
					return translate(err, id)
				}
			}
			if err := tx.Profiles().ReplaceSkills(ctx, actor.UserID, *patch.SkillIDs); err != nil {
				return internalError(err)
			}
		}

		if patch.Email != nil {
			if err := tx.Users().UpdateAccount(ctx, usr.ID, usr.Username, normalizeEmail(*patch.Email)); err != nil {
				return translate(err, usr.ID)
			}
		}

		if newRef != "" {
			oldRef = p.PictureRef
			p.PictureRef = newRef
		}
		if patch.FacebookLink != nil {
			p.FacebookLink = strings.TrimSpace(*patch.FacebookLink)
		}
		if patch.LinkedinLink != nil {
			p.LinkedinLink = strings.TrimSpace(*patch.LinkedinLink)
		}
		if patch.AboutMe != nil {
			p.AboutMe = strings.TrimSpace(*patch.AboutMe)
		}
		if _, err := tx.Profiles().Update(ctx, p); err != nil {
			return translate(err, actor.UserID)
		}

		view, err = u.load(ctx, tx, actor.UserID)
		return err
	})
	if err != nil {
		if newRef != "" {
			u.deletePicture(ctx, newRef)
		}
		return ProfileView{}, err
	}

	// A mentor's skill set feeds the mentor_only catalog listing.
	if patch.SkillIDs != nil {
		u.invalidator.Invalidate(ctx)
	}
	if oldRef != "" && oldRef != newRef {
		u.deletePicture(ctx, oldRef)
	}
	return view, nil
}

func (u *Profiles) DeleteProfilePicture(ctx context.Context, actor domain.Actor) (ProfileView, error) {
	if err := requireAuthenticated(actor); err != nil {
		return ProfileView{}, err
	}

	var (
		oldRef string
		view   ProfileView
	)
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		p, err := tx.Profiles().Ensure(ctx, actor.UserID)
		if err != nil {
			return translate(err, actor.UserID)
		}
		oldRef = p.PictureRef
		p.PictureRef = ""
		if _, err := tx.Profiles().Update(ctx, p); err != nil {
			return translate(err, actor.UserID)
		}
		view, err = u.load(ctx, tx, actor.UserID)
		return err
	})
	if err != nil {
		return ProfileView{}, err
	}

	if oldRef != "" {
		u.deletePicture(ctx, oldRef)
	}
	return view, nil
}

func (u *Profiles) deletePicture(ctx context.Context, ref string) {
	if u.pictures == nil {
		return
	}
	if err := u.pictures.Delete(ctx, ref); err != nil {
		u.logger.Warn("profile picture delete failed", zap.String("ref", ref), zap.Error(err))
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
