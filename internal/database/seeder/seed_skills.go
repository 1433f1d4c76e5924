package seeder

import (
	"context"
	"fmt"

	"skillified/internal/database"
)

type SkillItem struct {
	Name        string
	Description string
}

func DefaultSkills() []SkillItem {
	return []SkillItem{
		{Name: "Guitar", Description: "Chords, strumming and reading tabs"},
		{Name: "Painting", Description: "Acrylic and watercolor basics"},
		{Name: "Cooking", Description: "Everyday home cooking techniques"},
		{Name: "Photography", Description: "Composition, light and editing"},
		{Name: "Go", Description: "Programming in Go"},
		{Name: "Public Speaking", Description: "Structuring and delivering talks"},
		{Name: "Spanish", Description: "Conversational Spanish"},
		{Name: "Yoga", Description: "Beginner friendly yoga practice"},
	}
}

// SkillsSeeder inserts catalog skills whose name is not present yet.
type SkillsSeeder struct {
	Items []SkillItem
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "description", "created_at", "updated_at"); err != nil {
		return err
	}

	err := database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range s.Items {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO skills (name, description)
SELECT $1::text, $2::text
WHERE NOT EXISTS (SELECT 1 FROM skills WHERE lower(name) = lower($1::text))`,
				it.Name,
				it.Description,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert skills: %w", err)
	}
	return nil
}
