package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"skillified/internal/domain"
	"skillified/internal/domain/event"
	"skillified/internal/domain/message"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
	"skillified/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu       sync.Mutex
	skills   []skill.Skill
	events   []event.Event
	messages []message.Message
}

func (n *recordingNotifier) SkillCreated(_ context.Context, _ domain.Actor, s skill.Skill) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.skills = append(n.skills, s)
}

func (n *recordingNotifier) EventCreated(_ context.Context, _ domain.Actor, e event.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) MessageSent(_ context.Context, m message.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, m)
}

type fixture struct {
	store    *memory.Store
	notifier *recordingNotifier
	catalog  *Catalog
	skills   *Skills
	events   *Events
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	n := &recordingNotifier{}
	inv := NewCatalogInvalidator(nil, nil)
	return &fixture{
		store:    st,
		notifier: n,
		catalog:  NewCatalogUsecase(st, nil, time.Minute, time.UTC, nil),
		skills:   NewSkillUsecase(st, inv, n),
		events:   NewEventUsecase(st, time.UTC, inv, n),
	}
}

func (f *fixture) actor(t *testing.T, username string, mentor bool) domain.Actor {
	t.Helper()
	ctx := context.Background()
	u, err := f.store.Users().Create(ctx, user.User{Username: username, PasswordHash: "x"})
	require.NoError(t, err)
	p, err := f.store.Profiles().Ensure(ctx, u.ID)
	require.NoError(t, err)
	if mentor {
		p.IsMentor = true
		_, err = f.store.Profiles().Update(ctx, p)
		require.NoError(t, err)
	}
	return domain.Actor{UserID: u.ID, IsMentor: mentor}
}

func (f *fixture) skill(t *testing.T, name, desc string) skill.Skill {
	t.Helper()
	s, err := f.store.Skills().Create(context.Background(), skill.Skill{Name: name, Description: desc})
	require.NoError(t, err)
	return s
}

func (f *fixture) event(t *testing.T, owner domain.Actor, skillID int64, title, at string) event.Event {
	t.Helper()
	e, err := f.events.CreateEvent(context.Background(), owner, skillID, event.Fields{
		Title: title, Overview: title + " overview", DateTime: at,
	})
	require.NoError(t, err)
	return e
}

func skillNames(items []skill.Skill) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, s.Name)
	}
	return out
}

func strPtr(s string) *string { return &s }
