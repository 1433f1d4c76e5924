package repository

import (
	"context"
	"strings"
	"time"

	"skillified/internal/database"
	"skillified/internal/domain/skill"
	"skillified/internal/search"
)

type SkillFilter struct {
	Query string
	// MentorOnly keeps skills listed on at least one mentor profile.
	MentorOnly bool
}

type SkillRepository interface {
	List(ctx context.Context, f SkillFilter) ([]skill.Skill, error)
	GetByID(ctx context.Context, id int64) (skill.Skill, error)
	// FindByName returns the oldest skill with the given name, additionally
	// matching description when it is non-nil.
	FindByName(ctx context.Context, name string, description *string) (skill.Skill, error)
	Create(ctx context.Context, s skill.Skill) (skill.Skill, error)
	Update(ctx context.Context, s skill.Skill) (skill.Skill, error)
	// Delete removes the skill together with its events and profile links.
	Delete(ctx context.Context, id int64) error
	// Popular ranks skills with events at or after since by distinct
	// participants. A non-positive limit returns every ranked skill.
	Popular(ctx context.Context, since time.Time, limit int) ([]skill.Popular, error)
}

type PostgresSkillRepository struct {
	db database.Querier
}

func NewPostgresSkillRepository(db database.Querier) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

const skillColumns = `s.id, s.name, s.description, s.created_at, s.updated_at`

func scanSkill(row database.Row) (skill.Skill, error) {
	var s skill.Skill
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func collectSkills(rows database.Rows) ([]skill.Skill, error) {
	defer rows.Close()

	out := make([]skill.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) List(ctx context.Context, f SkillFilter) ([]skill.Skill, error) {
	var (
		where []string
		args  []any
	)
	if q := search.NormalizeQuery(f.Query); q != "" {
		args = append(args, search.LikePattern(q))
		where = append(where, `(s.name ILIKE $1 ESCAPE '\' OR s.description ILIKE $1 ESCAPE '\')`)
	}
	if f.MentorOnly {
		where = append(where, `EXISTS (
			SELECT 1 FROM profile_skills ps
			JOIN profiles p ON p.user_id = ps.user_id
			WHERE ps.skill_id = s.id AND p.is_mentor)`)
	}

	query := `SELECT ` + skillColumns + ` FROM skills s`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY s.id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresSkillRepository) GetByID(ctx context.Context, id int64) (skill.Skill, error) {
	s, err := scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM skills s WHERE s.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) FindByName(ctx context.Context, name string, description *string) (skill.Skill, error) {
	var row database.Row
	if description == nil {
		row = r.db.QueryRow(ctx,
			`SELECT `+skillColumns+` FROM skills s WHERE s.name = $1 ORDER BY s.id ASC LIMIT 1`,
			name,
		)
	} else {
		row = r.db.QueryRow(ctx,
			`SELECT `+skillColumns+` FROM skills s WHERE s.name = $1 AND s.description = $2 ORDER BY s.id ASC LIMIT 1`,
			name, *description,
		)
	}
	s, err := scanSkill(row)
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) Create(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO skills AS s (name, description) VALUES ($1, $2) RETURNING `+skillColumns,
		s.Name, s.Description,
	)
	return scanSkill(row)
}

func (r *PostgresSkillRepository) Update(ctx context.Context, s skill.Skill) (skill.Skill, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE skills AS s SET name = $1, description = $2, updated_at = now() WHERE s.id = $3 RETURNING `+skillColumns,
		s.Name, s.Description, s.ID,
	)
	updated, err := scanSkill(row)
	if err != nil {
		if isNoRows(err) {
			return skill.Skill{}, skill.ErrNotFound
		}
		return skill.Skill{}, err
	}
	return updated, nil
}

func (r *PostgresSkillRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM skills WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return skill.ErrNotFound
	}
	return nil
}

func (r *PostgresSkillRepository) Popular(ctx context.Context, since time.Time, limit int) ([]skill.Popular, error) {
	if limit < 0 {
		limit = 0
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+skillColumns+`, COUNT(DISTINCT ep.user_id) AS participants
		 FROM skills s
		 JOIN events e ON e.skill_id = s.id AND e.date_time >= $1
		 LEFT JOIN event_participants ep ON ep.event_id = e.id
		 GROUP BY s.id
		 ORDER BY participants DESC, s.id ASC
		 LIMIT NULLIF($2::int, 0)`,
		since.UTC(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Popular, 0)
	for rows.Next() {
		var p skill.Popular
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt, &p.ParticipantCount); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
