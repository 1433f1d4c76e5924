package usecase

import (
	"context"
	"testing"

	"skillified/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessages_SendAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewMessageUsecase(f.store, f.notifier)
	alice := f.actor(t, "alice", false)
	bob := f.actor(t, "bob", false)
	carol := f.actor(t, "carol", false)

	m1, err := uc.Send(ctx, alice, SendMessageInput{ReceiverID: bob.UserID, Content: " hello "})
	require.NoError(t, err)
	assert.Equal(t, "hello", m1.Content)
	_, err = uc.Send(ctx, bob, SendMessageInput{ReceiverID: alice.UserID, Content: "hi back"})
	require.NoError(t, err)
	_, err = uc.Send(ctx, carol, SendMessageInput{ReceiverID: bob.UserID, Content: "unrelated"})
	require.NoError(t, err)

	items, err := uc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "hello", items[0].Content)
	assert.Equal(t, "hi back", items[1].Content)
	assert.Len(t, f.notifier.messages, 3)
}

func TestMessages_SendErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewMessageUsecase(f.store, f.notifier)
	alice := f.actor(t, "alice", false)

	_, err := uc.Send(ctx, alice, SendMessageInput{ReceiverID: 999, Content: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Send(ctx, alice, SendMessageInput{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)

	_, err = uc.List(ctx, domain.Anonymous())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, f.notifier.messages)
}
