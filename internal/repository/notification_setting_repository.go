package repository

import (
	"context"

	"skillified/internal/database"
	"skillified/internal/domain/user"
)

type NotificationSettingRepository interface {
	// Ensure returns the user's settings, creating the defaults first if needed.
	Ensure(ctx context.Context, userID int64) (user.NotificationSetting, error)
	Save(ctx context.Context, s user.NotificationSetting) (user.NotificationSetting, error)
	// ListByUserIDs returns settings keyed by user id. Users without a stored
	// row get the defaults.
	ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64]user.NotificationSetting, error)
}

type PostgresNotificationSettingRepository struct {
	db database.Querier
}

func NewPostgresNotificationSettingRepository(db database.Querier) *PostgresNotificationSettingRepository {
	return &PostgresNotificationSettingRepository{db: db}
}

func (r *PostgresNotificationSettingRepository) Ensure(ctx context.Context, userID int64) (user.NotificationSetting, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notification_settings (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return user.NotificationSetting{}, user.ErrNotFound
		}
		return user.NotificationSetting{}, err
	}

	var s user.NotificationSetting
	row := r.db.QueryRow(ctx,
		`SELECT user_id, new_message, new_event, new_skill, updated_at FROM notification_settings WHERE user_id = $1`,
		userID,
	)
	if err := row.Scan(&s.UserID, &s.NewMessage, &s.NewEvent, &s.NewSkill, &s.UpdatedAt); err != nil {
		return user.NotificationSetting{}, err
	}
	return s, nil
}

func (r *PostgresNotificationSettingRepository) Save(ctx context.Context, s user.NotificationSetting) (user.NotificationSetting, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO notification_settings (user_id, new_message, new_event, new_skill)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET new_message = EXCLUDED.new_message,
		     new_event = EXCLUDED.new_event,
		     new_skill = EXCLUDED.new_skill,
		     updated_at = now()
		 RETURNING user_id, new_message, new_event, new_skill, updated_at`,
		s.UserID, s.NewMessage, s.NewEvent, s.NewSkill,
	)
	var saved user.NotificationSetting
	if err := row.Scan(&saved.UserID, &saved.NewMessage, &saved.NewEvent, &saved.NewSkill, &saved.UpdatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return user.NotificationSetting{}, user.ErrNotFound
		}
		return user.NotificationSetting{}, err
	}
	return saved, nil
}

func (r *PostgresNotificationSettingRepository) ListByUserIDs(ctx context.Context, userIDs []int64) (map[int64]user.NotificationSetting, error) {
	out := make(map[int64]user.NotificationSetting, len(userIDs))
	for _, id := range userIDs {
		out[id] = user.DefaultNotificationSetting(id)
	}
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, new_message, new_event, new_skill, updated_at FROM notification_settings WHERE user_id = ANY($1)`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s user.NotificationSetting
		if err := rows.Scan(&s.UserID, &s.NewMessage, &s.NewEvent, &s.NewSkill, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out[s.UserID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
