package repository

import (
	"context"
	"strings"

	"skillified/internal/database"
	"skillified/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByID(ctx context.Context, id int64) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	UpdateAccount(ctx context.Context, id int64, username, email string) error
	// UpdatePassword stores the hash and bumps the token version, returning
	// the new version.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) (int, error)
	ListByIDs(ctx context.Context, ids []int64) ([]user.User, error)
}

type PostgresUserRepository struct {
	db database.Querier
}

func NewPostgresUserRepository(db database.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, token_version, created_at, updated_at`

func scanUser(row database.Row) (user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.TokenVersion, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, token_version)
		 VALUES ($1, $2, $3, 1)
		 RETURNING `+userColumns,
		strings.TrimSpace(u.Username), strings.TrimSpace(u.Email), u.PasswordHash,
	)
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameTaken
		}
		return user.User{}, err
	}
	return created, nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, strings.TrimSpace(username)))
	if err != nil {
		if isNoRows(err) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) UpdateAccount(ctx context.Context, id int64, username, email string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, updated_at = now() WHERE id = $3`,
		username, email, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrUsernameTaken
		}
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) (int, error) {
	var version int
	row := r.db.QueryRow(ctx,
		`UPDATE users
		 SET password_hash = $1, token_version = token_version + 1, updated_at = now()
		 WHERE id = $2
		 RETURNING token_version`,
		passwordHash, id,
	)
	if err := row.Scan(&version); err != nil {
		if isNoRows(err) {
			return 0, user.ErrNotFound
		}
		return 0, err
	}
	return version, nil
}

func (r *PostgresUserRepository) ListByIDs(ctx context.Context, ids []int64) ([]user.User, error) {
	out := make([]user.User, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
