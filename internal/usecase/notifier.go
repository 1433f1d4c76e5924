package usecase

import (
	"context"

	"skillified/internal/domain"
	"skillified/internal/domain/event"
	"skillified/internal/domain/message"
	"skillified/internal/domain/skill"
)

// Notifier pushes realtime notices after a write commits. Delivery is best
// effort and never fails the originating operation.
type Notifier interface {
	SkillCreated(ctx context.Context, author domain.Actor, s skill.Skill)
	EventCreated(ctx context.Context, author domain.Actor, e event.Event)
	MessageSent(ctx context.Context, m message.Message)
}

type nopNotifier struct{}

func (nopNotifier) SkillCreated(context.Context, domain.Actor, skill.Skill) {}
func (nopNotifier) EventCreated(context.Context, domain.Actor, event.Event) {}
func (nopNotifier) MessageSent(context.Context, message.Message) {}

func notifierOrNop(n Notifier) Notifier {
	if n == nil {
		return nopNotifier{}
	}
	return n
}
