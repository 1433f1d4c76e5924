package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"skillified/internal/domain"

	"github.com/asaskevich/govalidator"
	"go.uber.org/zap"
)

const (
	ReasonGeneral  = "general"
	ReasonSupport  = "support"
	ReasonFeedback = "feedback"

	MaxContactNameLength = 100
)

var contactReasons = map[string]string{
	ReasonGeneral:  "General Inquiry",
	ReasonSupport:  "Support Request",
	ReasonFeedback: "Feedback",
}

// MailDispatcher hands a message to the outbound mail transport.
type MailDispatcher interface {
	Dispatch(ctx context.Context, subject, body, from string, to []string) error
}

type ContactInput struct {
	Name    string
	Email   string
	Message string
	Reason  string
}

type ContactUsecase interface {
	// Submit validates the form and queues the email. Transport failures are
	// logged and never returned.
	Submit(ctx context.Context, in ContactInput) error
}

type Contact struct {
	mail       MailDispatcher
	from       string
	recipients []string
	logger     *zap.Logger
}

func NewContactUsecase(mail MailDispatcher, from string, recipients []string, logger *zap.Logger) *Contact {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Contact{mail: mail, from: from, recipients: recipients, logger: logger}
}

func (in ContactInput) normalize() (ContactInput, error) {
	out := ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
		Reason:  strings.ToLower(strings.TrimSpace(in.Reason)),
	}

	verr := &domain.ValidationError{}
	if out.Name == "" {
		verr.Add("name", domain.MsgFieldRequired)
	} else if n := utf8.RuneCountInString(out.Name); n > MaxContactNameLength {
		verr.Add("name", fmt.Sprintf("Ensure this value has at most %d characters (it has %d).", MaxContactNameLength, n))
	}
	if out.Email == "" {
		verr.Add("email", domain.MsgFieldRequired)
	} else if !govalidator.IsEmail(out.Email) {
		verr.Add("email", domain.MsgInvalidEmail)
	}
	if out.Message == "" {
		verr.Add("message", domain.MsgFieldRequired)
	}
	if out.Reason == "" {
		out.Reason = ReasonGeneral
	} else if _, ok := contactReasons[out.Reason]; !ok {
		verr.Add("reason", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", in.Reason))
	}
	return out, verr.OrNil()
}

func (u *Contact) Submit(ctx context.Context, in ContactInput) error {
	form, err := in.normalize()
	if err != nil {
		return err
	}

	if u.mail == nil || len(u.recipients) == 0 {
		u.logger.Warn("contact form received but no mail recipients are configured",
			zap.String("reason", form.Reason),
		)
		return nil
	}

	subject := fmt.Sprintf("[Contact] %s from %s", contactReasons[form.Reason], form.Name)
	body := fmt.Sprintf("Name: %s\nEmail: %s\nReason: %s\n\n%s\n", form.Name, form.Email, contactReasons[form.Reason], form.Message)
	from := u.from
	if from == "" {
		from = form.Email
	}

	if err := u.mail.Dispatch(ctx, subject, body, from, u.recipients); err != nil {
		u.logger.Error("contact email dispatch failed", zap.String("reason", form.Reason), zap.Error(err))
	}
	return nil
}
