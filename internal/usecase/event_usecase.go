package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillified/internal/domain"
	"skillified/internal/domain/event"
	"skillified/internal/domain/user"
	"skillified/internal/repository"
)

const (
	ActionRegister   = "register"
	ActionUnregister = "unregister"
)

type EventUsecase interface {
	CreateEvent(ctx context.Context, actor domain.Actor, skillID int64, in event.Fields) (event.Event, error)
	EditEvent(ctx context.Context, actor domain.Actor, eventID int64, in event.Fields) (event.Event, error)
	DeleteEvent(ctx context.Context, actor domain.Actor, eventID int64) error
	Register(ctx context.Context, actor domain.Actor, eventID int64) (event.Event, error)
	Unregister(ctx context.Context, actor domain.Actor, eventID int64) (event.Event, error)
	// SetParticipation dispatches to Register or Unregister by action name.
	SetParticipation(ctx context.Context, actor domain.Actor, eventID int64, action string) (event.Event, error)
}

type Events struct {
	store       repository.Store
	loc         *time.Location
	invalidator *CatalogInvalidator
	notifier    Notifier
}

func NewEventUsecase(store repository.Store, loc *time.Location, invalidator *CatalogInvalidator, notifier Notifier) *Events {
	if loc == nil {
		loc = time.UTC
	}
	return &Events{store: store, loc: loc, invalidator: invalidator, notifier: notifierOrNop(notifier)}
}

// requireMentor checks the stored profile rather than the actor snapshot so
// a revoked mentor flag takes effect immediately.
func requireMentor(ctx context.Context, st repository.Store, actor domain.Actor) error {
	if err := requireAuthenticated(actor); err != nil {
		return err
	}
	p, err := st.Profiles().Ensure(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUnauthorized
		}
		return internalError(err)
	}
	if !p.IsMentor {
		return domain.NewAuthorizationError("only mentors can do this")
	}
	return nil
}

func (u *Events) CreateEvent(ctx context.Context, actor domain.Actor, skillID int64, in event.Fields) (event.Event, error) {
	var created event.Event
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		if err := requireMentor(ctx, tx, actor); err != nil {
			return err
		}
		if _, err := tx.Skills().GetByID(ctx, skillID); err != nil {
			return translate(err, skillID)
		}
		at, err := in.Validate(u.loc)
		if err != nil {
			return err
		}

		e, err := tx.Events().Create(ctx, event.Event{
			Title:    strings.TrimSpace(in.Title),
			Overview: strings.TrimSpace(in.Overview),
			DateTime: at,
			SkillID:  skillID,
			OwnerID:  actor.UserID,
		})
		if err != nil {
			return translate(err, skillID)
		}
		created = e
		return nil
	})
	if err != nil {
		return event.Event{}, err
	}

	u.invalidator.Invalidate(ctx)
	u.notifier.EventCreated(ctx, actor, created)
	return created, nil
}

// loadOwned returns the event when actor owns it.
func loadOwned(ctx context.Context, st repository.Store, actor domain.Actor, eventID int64) (event.Event, error) {
	if err := requireAuthenticated(actor); err != nil {
		return event.Event{}, err
	}
	e, err := st.Events().GetByID(ctx, eventID)
	if err != nil {
		return event.Event{}, translate(err, eventID)
	}
	if !e.IsOwnedBy(actor.UserID) {
		return event.Event{}, domain.NewAuthorizationError("only the event owner can do this")
	}
	return e, nil
}

func (u *Events) EditEvent(ctx context.Context, actor domain.Actor, eventID int64, in event.Fields) (event.Event, error) {
	var updated event.Event
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		e, err := loadOwned(ctx, tx, actor, eventID)
		if err != nil {
			return err
		}
		at, err := in.Validate(u.loc)
		if err != nil {
			return err
		}

		e.Title = strings.TrimSpace(in.Title)
		e.Overview = strings.TrimSpace(in.Overview)
		e.DateTime = at
		updated, err = tx.Events().Update(ctx, e)
		return translate(err, eventID)
	})
	if err != nil {
		return event.Event{}, err
	}

	u.invalidator.Invalidate(ctx)
	return updated, nil
}

func (u *Events) DeleteEvent(ctx context.Context, actor domain.Actor, eventID int64) error {
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := loadOwned(ctx, tx, actor, eventID); err != nil {
			return err
		}
		return translate(tx.Events().Delete(ctx, eventID), eventID)
	})
	if err != nil {
		return err
	}

	u.invalidator.Invalidate(ctx)
	return nil
}

func (u *Events) Register(ctx context.Context, actor domain.Actor, eventID int64) (event.Event, error) {
	return u.participate(ctx, actor, eventID, true)
}

func (u *Events) Unregister(ctx context.Context, actor domain.Actor, eventID int64) (event.Event, error) {
	return u.participate(ctx, actor, eventID, false)
}

func (u *Events) SetParticipation(ctx context.Context, actor domain.Actor, eventID int64, action string) (event.Event, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionRegister:
		return u.Register(ctx, actor, eventID)
	case ActionUnregister:
		return u.Unregister(ctx, actor, eventID)
	default:
		return event.Event{}, domain.NewFieldError("action", "Select a valid choice. That choice is not one of the available choices.")
	}
}

// participate moves (event, actor) to the requested state. Requests for the
// current state are no-ops.
func (u *Events) participate(ctx context.Context, actor domain.Actor, eventID int64, join bool) (event.Event, error) {
	if err := requireAuthenticated(actor); err != nil {
		return event.Event{}, err
	}

	var (
		out     event.Event
		changed bool
	)
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		e, err := tx.Events().GetByID(ctx, eventID)
		if err != nil {
			return translate(err, eventID)
		}

		registered := e.HasParticipant(actor.UserID)
		switch {
		case join && !registered:
			err = tx.Events().AddParticipant(ctx, eventID, actor.UserID)
		case !join && registered:
			err = tx.Events().RemoveParticipant(ctx, eventID, actor.UserID)
		default:
			out = e
			return nil
		}
		if err != nil {
			return translate(err, eventID)
		}

		changed = true
		out, err = tx.Events().GetByID(ctx, eventID)
		return translate(err, eventID)
	})
	if err != nil {
		return event.Event{}, err
	}

	if changed {
		u.invalidator.Invalidate(ctx)
	}
	return out, nil
}
