package usecase

import (
	"context"
	"errors"
	"strings"

	"skillified/internal/domain"
	"skillified/internal/domain/message"
	"skillified/internal/domain/user"
	"skillified/internal/repository"
)

type SendMessageInput struct {
	ReceiverID int64
	Content    string
}

type MessageUsecase interface {
	Send(ctx context.Context, actor domain.Actor, in SendMessageInput) (message.Message, error)
	// List returns the actor's sent and received messages, oldest first.
	List(ctx context.Context, actor domain.Actor) ([]message.Message, error)
}

type Messages struct {
	store    repository.Store
	notifier Notifier
}

func NewMessageUsecase(store repository.Store, notifier Notifier) *Messages {
	return &Messages{store: store, notifier: notifierOrNop(notifier)}
}

func (u *Messages) Send(ctx context.Context, actor domain.Actor, in SendMessageInput) (message.Message, error) {
	if err := requireAuthenticated(actor); err != nil {
		return message.Message{}, err
	}

	content := strings.TrimSpace(in.Content)
	verr := &domain.ValidationError{}
	if in.ReceiverID <= 0 {
		verr.Add("receiver_id", domain.MsgFieldRequired)
	}
	if content == "" {
		verr.Add("content", domain.MsgFieldRequired)
	}
	if err := verr.OrNil(); err != nil {
		return message.Message{}, err
	}

	var out message.Message
	err := u.store.InTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, in.ReceiverID); err != nil {
			return translate(err, in.ReceiverID)
		}
		m, err := tx.Messages().Create(ctx, message.Message{
			SenderID:   actor.UserID,
			ReceiverID: in.ReceiverID,
			Content:    content,
		})
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				return domain.NewNotFoundError("user", in.ReceiverID)
			}
			return internalError(err)
		}
		out = m
		return nil
	})
	if err != nil {
		return message.Message{}, err
	}

	u.notifier.MessageSent(ctx, out)
	return out, nil
}

func (u *Messages) List(ctx context.Context, actor domain.Actor) ([]message.Message, error) {
	if err := requireAuthenticated(actor); err != nil {
		return nil, err
	}
	items, err := u.store.Messages().ListForUser(ctx, actor.UserID)
	if err != nil {
		return nil, internalError(err)
	}
	return items, nil
}
