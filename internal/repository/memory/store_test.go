package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillified/internal/domain/event"
	"skillified/internal/domain/message"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
	"skillified/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUser(t *testing.T, s *Store, name string, mentor bool) user.User {
	t.Helper()
	ctx := context.Background()
	u, err := s.Users().Create(ctx, user.User{Username: name, PasswordHash: "x"})
	require.NoError(t, err)
	p, err := s.Profiles().Ensure(ctx, u.ID)
	require.NoError(t, err)
	if mentor {
		p.IsMentor = true
		_, err = s.Profiles().Update(ctx, p)
		require.NoError(t, err)
	}
	return u
}

func mustSkill(t *testing.T, s *Store, name, desc string) skill.Skill {
	t.Helper()
	sk, err := s.Skills().Create(context.Background(), skill.Skill{Name: name, Description: desc})
	require.NoError(t, err)
	return sk
}

func mustEvent(t *testing.T, s *Store, skillID, ownerID int64, title string, at time.Time) event.Event {
	t.Helper()
	e, err := s.Events().Create(context.Background(), event.Event{
		Title: title, Overview: title + " overview", DateTime: at, SkillID: skillID, OwnerID: ownerID,
	})
	require.NoError(t, err)
	return e
}

func TestUsers_UsernameUnique(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := mustUser(t, s, "alice", false)
	b := mustUser(t, s, "bob", false)

	_, err := s.Users().Create(ctx, user.User{Username: "alice"})
	assert.ErrorIs(t, err, user.ErrUsernameTaken)

	err = s.Users().UpdateAccount(ctx, b.ID, "alice", "")
	assert.ErrorIs(t, err, user.ErrUsernameTaken)

	require.NoError(t, s.Users().UpdateAccount(ctx, a.ID, "alice", "a@example.com"))
	got, err := s.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
}

func TestUsers_UpdatePasswordBumpsVersion(t *testing.T) {
	s := NewStore()
	u := mustUser(t, s, "alice", false)

	v, err := s.Users().UpdatePassword(context.Background(), u.ID, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, u.TokenVersion+1, v)

	_, err = s.Users().UpdatePassword(context.Background(), 999, "x")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestInTx_RollsBackEveryWrite(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := mustUser(t, s, "alice", false)
	boom := errors.New("boom")

	err := s.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Users().UpdateAccount(ctx, u.ID, "renamed", ""); err != nil {
			return err
		}
		if _, err := tx.Skills().Create(ctx, skill.Skill{Name: "Guitar"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	skills, err := s.Skills().List(ctx, repository.SkillFilter{})
	require.NoError(t, err)
	assert.Empty(t, skills)

	created, err := s.Skills().Create(ctx, skill.Skill{Name: "Cello"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID, "rolled back ids are reused from the snapshot")
}

func TestInTx_CommitsAndNests(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.InTx(ctx, func(tx repository.Store) error {
		return tx.InTx(ctx, func(inner repository.Store) error {
			_, err := inner.Skills().Create(ctx, skill.Skill{Name: "Guitar"})
			return err
		})
	})
	require.NoError(t, err)

	skills, err := s.Skills().List(ctx, repository.SkillFilter{})
	require.NoError(t, err)
	assert.Len(t, skills, 1)
}

func TestSkills_ListFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	mentor := mustUser(t, s, "mentor", true)
	learner := mustUser(t, s, "learner", false)
	guitar := mustSkill(t, s, "Guitar", "music")
	paint := mustSkill(t, s, "Painting", "Watercolor")
	mustSkill(t, s, "Chess", "")

	require.NoError(t, s.Profiles().AddSkill(ctx, mentor.ID, guitar.ID))
	require.NoError(t, s.Profiles().AddSkill(ctx, learner.ID, paint.ID))

	all, err := s.Skills().List(ctx, repository.SkillFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	music, err := s.Skills().List(ctx, repository.SkillFilter{Query: "MUSIC"})
	require.NoError(t, err)
	require.Len(t, music, 1)
	assert.Equal(t, guitar.ID, music[0].ID)

	none, err := s.Skills().List(ctx, repository.SkillFilter{Query: "paint brush"})
	require.NoError(t, err)
	assert.Empty(t, none)

	mentorOnly, err := s.Skills().List(ctx, repository.SkillFilter{MentorOnly: true})
	require.NoError(t, err)
	require.Len(t, mentorOnly, 1)
	assert.Equal(t, guitar.ID, mentorOnly[0].ID)
}

func TestSkills_DeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := mustUser(t, s, "a", true)
	b := mustUser(t, s, "b", false)
	sk := mustSkill(t, s, "Guitar", "music")
	other := mustSkill(t, s, "Chess", "")
	require.NoError(t, s.Profiles().AddSkill(ctx, a.ID, sk.ID))
	require.NoError(t, s.Profiles().AddSkill(ctx, b.ID, sk.ID))
	require.NoError(t, s.Profiles().AddSkill(ctx, b.ID, other.ID))
	e := mustEvent(t, s, sk.ID, a.ID, "Jam", time.Now().Add(time.Hour))

	require.NoError(t, s.Skills().Delete(ctx, sk.ID))

	_, err := s.Events().GetByID(ctx, e.ID)
	assert.ErrorIs(t, err, event.ErrNotFound)
	aSkills, err := s.Profiles().ListSkills(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, aSkills)
	bSkills, err := s.Profiles().ListSkills(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, bSkills, 1)
	assert.Equal(t, other.ID, bSkills[0].ID)

	assert.ErrorIs(t, s.Skills().Delete(ctx, sk.ID), skill.ErrNotFound)
}

func TestSkills_FindByName(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	first := mustSkill(t, s, "Guitar", "acoustic")
	second := mustSkill(t, s, "Guitar", "electric")

	got, err := s.Skills().FindByName(ctx, "Guitar", nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	desc := "electric"
	got, err = s.Skills().FindByName(ctx, "Guitar", &desc)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	_, err = s.Skills().FindByName(ctx, "guitar", nil)
	assert.ErrorIs(t, err, skill.ErrNotFound)
}

func TestSkills_PopularRanksUpcomingParticipants(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC)
	owner := mustUser(t, s, "owner", true)
	u1 := mustUser(t, s, "u1", false)
	u2 := mustUser(t, s, "u2", false)

	a := mustSkill(t, s, "A", "")
	b := mustSkill(t, s, "B", "")
	c := mustSkill(t, s, "C", "")
	d := mustSkill(t, s, "D", "")

	ea1 := mustEvent(t, s, a.ID, owner.ID, "a1", now.Add(time.Hour))
	ea2 := mustEvent(t, s, a.ID, owner.ID, "a2", now.Add(2*time.Hour))
	eb := mustEvent(t, s, b.ID, owner.ID, "b", now.Add(time.Hour))
	mustEvent(t, s, c.ID, owner.ID, "c", now.Add(time.Hour))
	ed := mustEvent(t, s, d.ID, owner.ID, "d", now.Add(-time.Hour))

	for _, p := range []struct{ e, u int64 }{
		{ea1.ID, u1.ID}, {ea2.ID, u1.ID}, {eb.ID, u1.ID}, {eb.ID, u2.ID}, {ed.ID, u1.ID}, {ed.ID, u2.ID},
	} {
		require.NoError(t, s.Events().AddParticipant(ctx, p.e, p.u))
	}

	ranked, err := s.Skills().Popular(ctx, now, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, b.ID, ranked[0].ID)
	assert.Equal(t, 2, ranked[0].ParticipantCount)
	assert.Equal(t, a.ID, ranked[1].ID)
	assert.Equal(t, 1, ranked[1].ParticipantCount, "participants are counted once per skill")
	assert.Equal(t, c.ID, ranked[2].ID)

	top, err := s.Skills().Popular(ctx, now, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestEvents_ParticipationIsIdempotent(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	owner := mustUser(t, s, "owner", true)
	b := mustUser(t, s, "b", false)
	sk := mustSkill(t, s, "Guitar", "")
	e := mustEvent(t, s, sk.ID, owner.ID, "Jam", time.Now())

	require.NoError(t, s.Events().AddParticipant(ctx, e.ID, b.ID))
	require.NoError(t, s.Events().AddParticipant(ctx, e.ID, b.ID))
	got, err := s.Events().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, got.Participants)

	require.NoError(t, s.Events().RemoveParticipant(ctx, e.ID, b.ID))
	require.NoError(t, s.Events().RemoveParticipant(ctx, e.ID, b.ID))
	got, err = s.Events().GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Participants)

	assert.ErrorIs(t, s.Events().AddParticipant(ctx, 999, b.ID), event.ErrNotFound)
}

func TestEvents_ListFiltersByTextAndRange(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	owner := mustUser(t, s, "owner", true)
	sk := mustSkill(t, s, "Guitar", "")
	day := time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC)
	late := mustEvent(t, s, sk.ID, owner.ID, "Evening jam", day.Add(20*time.Hour))
	early := mustEvent(t, s, sk.ID, owner.ID, "Morning scales", day.Add(10*time.Hour))
	mustEvent(t, s, sk.ID, owner.ID, "Next day jam", day.Add(30*time.Hour))

	from, to := day, day.Add(24*time.Hour)
	got, err := s.Events().List(ctx, repository.EventFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)

	got, err = s.Events().List(ctx, repository.EventFilter{Query: "JAM"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Events().List(ctx, repository.EventFilter{Query: "overview"})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestNotificationSettings_DefaultsAndSave(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	u := mustUser(t, s, "alice", false)

	got, err := s.NotificationSettings().Ensure(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.NewMessage && got.NewEvent && got.NewSkill)

	_, err = s.NotificationSettings().Save(ctx, user.NotificationSetting{UserID: u.ID, NewEvent: true})
	require.NoError(t, err)

	m, err := s.NotificationSettings().ListByUserIDs(ctx, []int64{u.ID, 42})
	require.NoError(t, err)
	assert.False(t, m[u.ID].NewMessage)
	assert.True(t, m[u.ID].NewEvent)
	assert.True(t, m[42].NewSkill)
}

func TestMessages_CreateAndList(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a := mustUser(t, s, "a", false)
	b := mustUser(t, s, "b", false)
	c := mustUser(t, s, "c", false)

	_, err := s.Messages().Create(ctx, messageOf(a.ID, b.ID, "hi"))
	require.NoError(t, err)
	_, err = s.Messages().Create(ctx, messageOf(c.ID, a.ID, "yo"))
	require.NoError(t, err)
	_, err = s.Messages().Create(ctx, messageOf(b.ID, c.ID, "hey"))
	require.NoError(t, err)
	_, err = s.Messages().Create(ctx, messageOf(a.ID, 999, "lost"))
	assert.ErrorIs(t, err, user.ErrNotFound)

	got, err := s.Messages().ListForUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "hi", got[0].Content)
	assert.Equal(t, "yo", got[1].Content)
}

func messageOf(from, to int64, content string) message.Message {
	return message.Message{SenderID: from, ReceiverID: to, Content: content}
}
