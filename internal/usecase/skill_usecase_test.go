package usecase

import (
	"context"
	"testing"

	"skillified/internal/domain"
	"skillified/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSkillToProfile_GetOrCreateIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.actor(t, "alice", false)
	bob := f.actor(t, "bob", false)

	first, err := f.skills.AddSkillToProfile(ctx, alice, AddSkillInput{Name: "Guitar"})
	require.NoError(t, err)
	again, err := f.skills.AddSkillToProfile(ctx, alice, AddSkillInput{Name: "Guitar"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	shared, err := f.skills.AddSkillToProfile(ctx, bob, AddSkillInput{Name: "Guitar"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, shared.ID)

	mine, err := f.skills.ListProfileSkills(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := f.store.Skills().List(ctx, repository.SkillFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAddSkillToProfile_DescriptionNarrowsLookup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.actor(t, "alice", false)
	existing := f.skill(t, "Guitar", "music")

	s, err := f.skills.AddSkillToProfile(ctx, alice, AddSkillInput{Name: "Guitar", Description: strPtr("woodwork")})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, s.ID)
	assert.Equal(t, "woodwork", s.Description)

	s, err = f.skills.AddSkillToProfile(ctx, alice, AddSkillInput{Name: "Guitar", Description: strPtr("music")})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, s.ID)
}

func TestAddSkillToProfile_Validation(t *testing.T) {
	f := newFixture(t)
	alice := f.actor(t, "alice", false)

	_, err := f.skills.AddSkillToProfile(context.Background(), alice, AddSkillInput{Name: "  "})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.skills.AddSkillToProfile(context.Background(), domain.Anonymous(), AddSkillInput{Name: "Go"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestEditSkill_RenamesForEveryProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.actor(t, "alice", false)
	bob := f.actor(t, "bob", false)

	s, err := f.skills.AddSkillToProfile(ctx, alice, AddSkillInput{Name: "Guitar"})
	require.NoError(t, err)
	_, err = f.skills.AddSkillToProfile(ctx, bob, AddSkillInput{Name: "Guitar"})
	require.NoError(t, err)

	edited, err := f.skills.EditSkill(ctx, alice, s.ID, EditSkillInput{Name: strPtr("Bass Guitar")})
	require.NoError(t, err)
	assert.Equal(t, "Bass Guitar", edited.Name)

	bobs, err := f.skills.ListProfileSkills(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bass Guitar"}, skillNames(bobs))
}

func TestEditSkill_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.actor(t, "alice", false)
	s := f.skill(t, "Guitar", "music")

	_, err := f.skills.EditSkill(ctx, alice, 999, EditSkillInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.skills.EditSkill(ctx, alice, s.ID, EditSkillInput{Name: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := f.store.Skills().GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Guitar", got.Name)
}

func TestDeleteSkill_CascadesGlobally(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, "mentor", true)
	bob := f.actor(t, "bob", false)

	s, err := f.skills.AddSkillToProfile(ctx, mentor, AddSkillInput{Name: "Guitar"})
	require.NoError(t, err)
	_, err = f.skills.AddSkillToProfile(ctx, bob, AddSkillInput{Name: "Guitar"})
	require.NoError(t, err)
	e := f.event(t, mentor, s.ID, "Jam", "2030-01-01 18:00")

	require.NoError(t, f.skills.DeleteSkill(ctx, bob, s.ID))

	_, err = f.store.Events().GetByID(ctx, e.ID)
	assert.Error(t, err)
	for _, a := range []domain.Actor{mentor, bob} {
		items, err := f.skills.ListProfileSkills(ctx, a)
		require.NoError(t, err)
		assert.Empty(t, items)
	}

	err = f.skills.DeleteSkill(ctx, bob, s.ID)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "skill", nf.Entity)
	assert.Equal(t, s.ID, nf.ID)
}

func TestMentorAddSkill(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, "mentor", true)
	learner := f.actor(t, "learner", false)

	_, err := f.skills.MentorAddSkill(ctx, learner, MentorSkillInput{Name: "Painting", Description: "oil"})
	assert.ErrorIs(t, err, domain.ErrAuthorization)

	_, err = f.skills.MentorAddSkill(ctx, mentor, MentorSkillInput{Name: "Painting"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.MsgFieldRequired, verr.Fields["description"])

	all, err := f.store.Skills().List(ctx, repository.SkillFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)

	s, err := f.skills.MentorAddSkill(ctx, mentor, MentorSkillInput{Name: "Guitar", Description: "music"})
	require.NoError(t, err)
	require.Len(t, f.notifier.skills, 1)
	assert.Equal(t, s.ID, f.notifier.skills[0].ID)

	mine, err := f.skills.ListProfileSkills(ctx, mentor)
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar"}, skillNames(mine))

	found, err := f.catalog.ListSkills(ctx, SkillListParams{Query: "music"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar"}, skillNames(found))

	found, err = f.catalog.ListSkills(ctx, SkillListParams{Query: "paint"})
	require.NoError(t, err)
	assert.Empty(t, found)

	mentors, err := f.catalog.ListSkills(ctx, SkillListParams{MentorOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Guitar"}, skillNames(mentors))
}

func TestMentorAddSkill_RevokedMentorIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mentor := f.actor(t, "mentor", true)

	p, err := f.store.Profiles().Ensure(ctx, mentor.UserID)
	require.NoError(t, err)
	p.IsMentor = false
	_, err = f.store.Profiles().Update(ctx, p)
	require.NoError(t, err)

	// The actor snapshot still claims mentor status.
	_, err = f.skills.MentorAddSkill(ctx, mentor, MentorSkillInput{Name: "Go", Description: "lang"})
	assert.ErrorIs(t, err, domain.ErrAuthorization)
}
