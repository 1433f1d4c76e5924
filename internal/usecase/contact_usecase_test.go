package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skillified/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type sentMail struct {
	subject, body, from string
	to                  []string
}

type fakeDispatcher struct {
	sent []sentMail
	err  error
}

func (d *fakeDispatcher) Dispatch(_ context.Context, subject, body, from string, to []string) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, sentMail{subject: subject, body: body, from: from, to: to})
	return nil
}

func TestContact_Validation(t *testing.T) {
	d := &fakeDispatcher{}
	uc := NewContactUsecase(d, "noreply@example.com", []string{"team@example.com"}, nil)

	err := uc.Submit(context.Background(), ContactInput{Email: "testuser@example.com"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":    domain.MsgFieldRequired,
		"message": domain.MsgFieldRequired,
	}, verr.Fields)

	err = uc.Submit(context.Background(), ContactInput{
		Name: strings.Repeat("n", 101), Email: "invalid-email", Message: "m", Reason: "spam",
	})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Ensure this value has at most 100 characters (it has 101).", verr.Fields["name"])
	assert.Equal(t, domain.MsgInvalidEmail, verr.Fields["email"])
	assert.Equal(t, "Select a valid choice. spam is not one of the available choices.", verr.Fields["reason"])
	assert.Empty(t, d.sent)
}

func TestContact_SendsToRecipients(t *testing.T) {
	d := &fakeDispatcher{}
	uc := NewContactUsecase(d, "noreply@example.com", []string{"team@example.com"}, nil)

	err := uc.Submit(context.Background(), ContactInput{
		Name: "Test User", Email: "testuser@example.com", Message: "This is a test message.",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	assert.Equal(t, "[Contact] General Inquiry from Test User", d.sent[0].subject)
	assert.Contains(t, d.sent[0].body, "This is a test message.")
	assert.Equal(t, "noreply@example.com", d.sent[0].from)
	assert.Equal(t, []string{"team@example.com"}, d.sent[0].to)
}

func TestContact_TransportFailureIsLoggedOnly(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	d := &fakeDispatcher{err: errors.New("queue full")}
	uc := NewContactUsecase(d, "", []string{"team@example.com"}, zap.New(core))

	err := uc.Submit(context.Background(), ContactInput{
		Name: "Test User", Email: "testuser@example.com", Message: "hi", Reason: ReasonSupport,
	})
	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "contact email dispatch failed", logs.All()[0].Message)
}
