package usecase

import (
	"context"
	"testing"
	"time"

	"skillified/internal/domain"
	"skillified/internal/domain/skill"
	"skillified/internal/infrastructure/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSkills_SubstringOverNameOrDescription(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.skill(t, "Guitar", "music")
	f.skill(t, "Oil Painting", "Canvas work")
	f.skill(t, "Piano", "Classical MUSIC")

	all, err := f.catalog.ListSkills(ctx, SkillListParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar", "Oil Painting", "Piano"}, skillNames(all))

	cases := map[string][]string{
		"music":   {"Guitar", "Piano"},
		"PAINT":   {"Oil Painting"},
		"an":      {"Oil Painting", "Piano"},
		"   ":     {"Guitar", "Oil Painting", "Piano"},
		"nothing": {},
	}
	for q, want := range cases {
		got, err := f.catalog.ListSkills(ctx, SkillListParams{Query: q})
		require.NoError(t, err, q)
		assert.Equal(t, want, skillNames(got), q)
	}
}

func TestListEvents_FiltersByDateAndText(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	m := f.actor(t, "mentor", true)
	s := f.skill(t, "Guitar", "music")
	f.event(t, m, s.ID, "Morning jam", "2025-01-21 08:00")
	f.event(t, m, s.ID, "Late jam", "2025-01-21 23:30")
	f.event(t, m, s.ID, "Workshop", "2025-01-22 00:00")

	got, err := f.catalog.ListEvents(ctx, EventListParams{OnDate: "2025-01-21"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Morning jam", got[0].Title)
	assert.Equal(t, "Late jam", got[1].Title)

	got, err = f.catalog.ListEvents(ctx, EventListParams{Query: "SHOP"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Workshop", got[0].Title)

	got, err = f.catalog.ListEvents(ctx, EventListParams{Query: "jam", OnDate: "2025-01-22"})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.catalog.ListEvents(ctx, EventListParams{OnDate: "21/01/2025"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.MsgInvalidDate, verr.Fields["event_date"])
}

func TestPopularSkills_RanksUpcomingParticipants(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.catalog.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }
	m := f.actor(t, "mentor", true)
	u1 := f.actor(t, "u1", false)
	u2 := f.actor(t, "u2", false)

	guitar := f.skill(t, "Guitar", "")
	piano := f.skill(t, "Piano", "")
	drums := f.skill(t, "Drums", "")

	past := f.event(t, m, guitar.ID, "old", "2029-06-01 10:00")
	for _, u := range []domain.Actor{u1, u2} {
		_, err := f.events.Register(ctx, u, past.ID)
		require.NoError(t, err)
	}
	pe := f.event(t, m, piano.ID, "p", "2030-02-01 10:00")
	_, err := f.events.Register(ctx, u1, pe.ID)
	require.NoError(t, err)
	f.event(t, m, guitar.ID, "g", "2030-03-01 10:00")
	f.event(t, m, drums.ID, "d", "2030-03-01 10:00")

	got, err := f.catalog.PopularSkills(ctx, 0)
	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Piano", "Guitar", "Drums"}, names)
	assert.Equal(t, 1, got[0].ParticipantCount)

	got, err = f.catalog.PopularSkills(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetEvent_Detail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.actor(t, "a", true)
	b := f.actor(t, "b", false)
	s := f.skill(t, "Guitar", "music")
	e := f.event(t, a, s.ID, "E", "2025-01-21T10:00")
	_, err := f.events.Register(ctx, b, e.ID)
	require.NoError(t, err)

	d, err := f.catalog.GetEvent(ctx, b, e.ID)
	require.NoError(t, err)
	assert.False(t, d.IsOwner)
	assert.True(t, d.IsRegistered)
	assert.Equal(t, "a", d.Owner.Username)
	assert.Empty(t, d.Owner.PasswordHash)
	require.Len(t, d.Participants, 1)
	assert.Equal(t, "b", d.Participants[0].Username)
	assert.Equal(t, "Guitar", d.Skill.Name)

	d, err = f.catalog.GetEvent(ctx, a, e.ID)
	require.NoError(t, err)
	assert.True(t, d.IsOwner)
	assert.False(t, d.IsRegistered)

	sd, err := f.catalog.GetSkill(ctx, b, s.ID)
	require.NoError(t, err)
	require.Len(t, sd.Events, 1)

	_, err = f.catalog.GetEvent(ctx, b, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalog_CachedUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rc := cache.NewRedisFromClient(client, time.Minute, nil)

	f := newFixture(t)
	ctx := context.Background()
	f.catalog = NewCatalogUsecase(f.store, rc, time.Minute, time.UTC, nil)
	inv := NewCatalogInvalidator(rc, nil)
	f.skills = NewSkillUsecase(f.store, inv, f.notifier)
	m := f.actor(t, "mentor", true)

	f.skill(t, "Guitar", "music")
	got, err := f.catalog.ListSkills(ctx, SkillListParams{Query: "Music"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar"}, skillNames(got))
	assert.NotEmpty(t, mr.Keys())

	// A write that bypasses the usecases is not visible until invalidation.
	_, err = f.store.Skills().Create(ctx, skill.Skill{Name: "Piano", Description: "music"})
	require.NoError(t, err)
	got, err = f.catalog.ListSkills(ctx, SkillListParams{Query: " music "})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar"}, skillNames(got))

	_, err = f.skills.MentorAddSkill(ctx, m, MentorSkillInput{Name: "Drums", Description: "music"})
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())

	got, err = f.catalog.ListSkills(ctx, SkillListParams{Query: "music"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar", "Piano", "Drums"}, skillNames(got))
}

func TestCatalog_MentorOnlyRefreshedAfterProfileSkillChange(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	rc := cache.NewRedisFromClient(client, time.Minute, nil)

	f := newFixture(t)
	ctx := context.Background()
	f.catalog = NewCatalogUsecase(f.store, rc, time.Minute, time.UTC, nil)
	profiles := NewProfileUsecase(f.store, newMemPictures(), NewCatalogInvalidator(rc, nil), nil)
	m := f.actor(t, "mentor", true)
	guitar := f.skill(t, "Guitar", "music")

	got, err := f.catalog.ListSkills(ctx, SkillListParams{MentorOnly: true})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotEmpty(t, mr.Keys())

	ids := []int64{guitar.ID}
	_, err = profiles.UpdateProfile(ctx, m, ProfilePatch{SkillIDs: &ids})
	require.NoError(t, err)
	assert.Empty(t, mr.Keys())

	got, err = f.catalog.ListSkills(ctx, SkillListParams{MentorOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar"}, skillNames(got))

	// Profile edits that leave skills alone keep the cached listing.
	about := "plays guitar"
	_, err = profiles.UpdateProfile(ctx, m, ProfilePatch{AboutMe: &about})
	require.NoError(t, err)
	assert.NotEmpty(t, mr.Keys())
}
