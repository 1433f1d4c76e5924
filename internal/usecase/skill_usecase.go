package usecase

import (
	"context"
	"errors"
	"strings"

	"skillified/internal/domain"
	"skillified/internal/domain/skill"
	"skillified/internal/repository"
)

type AddSkillInput struct {
	Name string
	// Description narrows the get-or-create lookup when present.
	Description *string
}

type EditSkillInput struct {
	Name        *string
	Description *string
}

type MentorSkillInput struct {
	Name        string
	Description string
}

type SkillUsecase interface {
	ListProfileSkills(ctx context.Context, actor domain.Actor) ([]skill.Skill, error)
	AddSkillToProfile(ctx context.Context, actor domain.Actor, in AddSkillInput) (skill.Skill, error)
	// EditSkill renames the shared skill record for every profile using it.
	EditSkill(ctx context.Context, actor domain.Actor, id int64, in EditSkillInput) (skill.Skill, error)
	// DeleteSkill removes the skill from the catalog together with its events.
	DeleteSkill(ctx context.Context, actor domain.Actor, id int64) error
	MentorAddSkill(ctx context.Context, actor domain.Actor, in MentorSkillInput) (skill.Skill, error)
}

type Skills struct {
	store       repository.Store
	invalidator *CatalogInvalidator
	notifier    Notifier
}

func NewSkillUsecase(store repository.Store, invalidator *CatalogInvalidator, notifier Notifier) *Skills {
	return &Skills{store: store, invalidator: invalidator, notifier: notifierOrNop(notifier)}
}

func (u *Skills) ListProfileSkills(ctx context.Context, actor domain.Actor) ([]skill.Skill, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	items, err := u.store.Profiles().ListSkills(ctx, actor.UserID)
	if err != nil {
		return nil, internalError(err)
	}
	return items, nil
}

func (u *Skills) AddSkillToProfile(ctx context.Context, actor domain.Actor, in AddSkillInput) (skill.Skill, error) {
	if err := requireAuthenticated(actor); err != nil {
		return skill.Skill{}, err
	}

	name := strings.TrimSpace(in.Name)
	verr := &domain.ValidationError{}
	skill.ValidateName(verr, name)
	if err := verr.OrNil(); err != nil {
		return skill.Skill{}, err
	}
	var desc *string
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		desc = &d
	}

	var out skill.Skill
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Profiles().Ensure(ctx, actor.UserID); err != nil {
			return translate(err, actor.UserID)
		}

		s, err := tx.Skills().FindByName(ctx, name, desc)
		switch {
		case err == nil:
		case errors.Is(err, skill.ErrNotFound):
			created := skill.Skill{Name: name}
			if desc != nil {
				created.Description = *desc
			}
			if s, err = tx.Skills().Create(ctx, created); err != nil {
				return internalError(err)
			}
		default:
			return internalError(err)
		}

		if err := tx.Profiles().AddSkill(ctx, actor.UserID, s.ID); err != nil {
			return translate(err, s.ID)
		}
		out = s
		return nil
	})
	if err != nil {
		return skill.Skill{}, err
	}

	u.invalidator.Invalidate(ctx)
	return out, nil
}

func (u *Skills) EditSkill(ctx context.Context, actor domain.Actor, id int64, in EditSkillInput) (skill.Skill, error) {
	if err := requireAuthenticated(actor); err != nil {
		return skill.Skill{}, err
	}

	var out skill.Skill
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		s, err := tx.Skills().GetByID(ctx, id)
		if err != nil {
			return translate(err, id)
		}
		if in.Name != nil {
			s.Name = strings.TrimSpace(*in.Name)
		}
		if in.Description != nil {
			s.Description = strings.TrimSpace(*in.Description)
		}

		verr := &domain.ValidationError{}
		skill.ValidateName(verr, s.Name)
		if err := verr.OrNil(); err != nil {
			return err
		}

		out, err = tx.Skills().Update(ctx, s)
		return translate(err, id)
	})
	if err != nil {
		return skill.Skill{}, err
	}

	u.invalidator.Invalidate(ctx)
	return out, nil
}

func (u *Skills) DeleteSkill(ctx context.Context, actor domain.Actor, id int64) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}

	err := u.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Skills().GetByID(ctx, id); err != nil {
			return translate(err, id)
		}
		if err := tx.Profiles().RemoveSkill(ctx, actor.UserID, id); err != nil {
			return internalError(err)
		}
		return translate(tx.Skills().Delete(ctx, id), id)
	})
	if err != nil {
		return err
	}

	u.invalidator.Invalidate(ctx)
	return nil
}

func (u *Skills) MentorAddSkill(ctx context.Context, actor domain.Actor, in MentorSkillInput) (skill.Skill, error) {
	var out skill.Skill
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		if err := requireMentor(ctx, tx, actor); err != nil {
			return err
		}

		name := strings.TrimSpace(in.Name)
		desc := strings.TrimSpace(in.Description)
		verr := &domain.ValidationError{}
		skill.ValidateName(verr, name)
		if desc == "" {
			verr.Add("description", domain.MsgFieldRequired)
		}
		if err := verr.OrNil(); err != nil {
			return err
		}

		s, err := tx.Skills().Create(ctx, skill.Skill{Name: name, Description: desc})
		if err != nil {
			return internalError(err)
		}
		if err := tx.Profiles().AddSkill(ctx, actor.UserID, s.ID); err != nil {
			return translate(err, s.ID)
		}
		out = s
		return nil
	})
	if err != nil {
		return skill.Skill{}, err
	}

	u.invalidator.Invalidate(ctx)
	u.notifier.SkillCreated(ctx, actor, out)
	return out, nil
}
