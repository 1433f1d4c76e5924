package repository

import (
	"context"

	"skillified/internal/database"
	"skillified/internal/domain/message"
	"skillified/internal/domain/user"
)

type MessageRepository interface {
	Create(ctx context.Context, m message.Message) (message.Message, error)
	// ListForUser returns messages sent or received by the user, oldest first.
	ListForUser(ctx context.Context, userID int64) ([]message.Message, error)
}

type PostgresMessageRepository struct {
	db database.Querier
}

func NewPostgresMessageRepository(db database.Querier) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m message.Message) (message.Message, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO messages (sender_id, receiver_id, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, sender_id, receiver_id, content, created_at`,
		m.SenderID, m.ReceiverID, m.Content,
	)
	var created message.Message
	if err := row.Scan(&created.ID, &created.SenderID, &created.ReceiverID, &created.Content, &created.Timestamp); err != nil {
		if isForeignKeyViolation(err) {
			return message.Message{}, user.ErrNotFound
		}
		return message.Message{}, err
	}
	return created, nil
}

func (r *PostgresMessageRepository) ListForUser(ctx context.Context, userID int64) ([]message.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, receiver_id, content, created_at
		 FROM messages
		 WHERE sender_id = $1 OR receiver_id = $1
		 ORDER BY created_at ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]message.Message, 0)
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
