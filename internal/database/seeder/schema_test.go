package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingColumns(t *testing.T) {
	existing := map[string]struct{}{"id": {}, "name": {}}

	require.NoError(t, missingColumns("skills", existing, []string{"id", "name"}))

	err := missingColumns("skills", existing, []string{"id", "description", "updated_at"})
	require.Error(t, err)
	assert.Equal(t, "schema mismatch: missing columns skills.description, skills.updated_at", err.Error())

	err = missingColumns("skills", existing, []string{""})
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	seeders := Defaults()
	require.Len(t, seeders, 1)
	assert.Equal(t, "skills", seeders[0].Name())

	skills, ok := seeders[0].(SkillsSeeder)
	require.True(t, ok)
	seen := map[string]bool{}
	for _, it := range skills.Items {
		assert.NotEmpty(t, it.Name)
		assert.NotEmpty(t, it.Description)
		assert.False(t, seen[it.Name], "duplicate %s", it.Name)
		seen[it.Name] = true
	}
}
