package repository

import (
	"context"

	"skillified/internal/database"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
)

type ProfileRepository interface {
	// Ensure returns the user's profile, creating an empty one first if needed.
	Ensure(ctx context.Context, userID int64) (user.Profile, error)
	Update(ctx context.Context, p user.Profile) (user.Profile, error)
	ListSkills(ctx context.Context, userID int64) ([]skill.Skill, error)
	// AddSkill is a no-op when the skill is already on the profile.
	AddSkill(ctx context.Context, userID, skillID int64) error
	RemoveSkill(ctx context.Context, userID, skillID int64) error
	ReplaceSkills(ctx context.Context, userID int64, skillIDs []int64) error
}

type PostgresProfileRepository struct {
	db database.Querier
}

func NewPostgresProfileRepository(db database.Querier) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `user_id, picture_ref, about_me, facebook_link, linkedin_link, is_mentor, created_at, updated_at`

func scanProfile(row database.Row) (user.Profile, error) {
	var p user.Profile
	err := row.Scan(&p.UserID, &p.PictureRef, &p.AboutMe, &p.FacebookLink, &p.LinkedinLink, &p.IsMentor, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PostgresProfileRepository) Ensure(ctx context.Context, userID int64) (user.Profile, error) {
	_, err := r.db.Exec(ctx, `INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}

	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID))
	if err != nil {
		if isNoRows(err) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Update(ctx context.Context, p user.Profile) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE profiles
		 SET picture_ref = $1, about_me = $2, facebook_link = $3, linkedin_link = $4, is_mentor = $5, updated_at = now()
		 WHERE user_id = $6
		 RETURNING `+profileColumns,
		p.PictureRef, p.AboutMe, p.FacebookLink, p.LinkedinLink, p.IsMentor, p.UserID,
	)
	updated, err := scanProfile(row)
	if err != nil {
		if isNoRows(err) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	return updated, nil
}

func (r *PostgresProfileRepository) ListSkills(ctx context.Context, userID int64) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.name, s.description, s.created_at, s.updated_at
		 FROM profile_skills ps
		 JOIN skills s ON s.id = ps.skill_id
		 WHERE ps.user_id = $1
		 ORDER BY s.id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collectSkills(rows)
}

func (r *PostgresProfileRepository) AddSkill(ctx context.Context, userID, skillID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profile_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, skillID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return skill.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresProfileRepository) RemoveSkill(ctx context.Context, userID, skillID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM profile_skills WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
	return err
}

func (r *PostgresProfileRepository) ReplaceSkills(ctx context.Context, userID int64, skillIDs []int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM profile_skills WHERE user_id = $1`, userID); err != nil {
		return err
	}
	for _, id := range skillIDs {
		if err := r.AddSkill(ctx, userID, id); err != nil {
			return err
		}
	}
	return nil
}
