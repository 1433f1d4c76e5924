package repository

import (
	"context"

	"skillified/internal/database"
)

// Store groups the repositories of one unit of work. Repositories obtained
// from the store passed to an InTx callback share its transaction.
type Store interface {
	Users() UserRepository
	Profiles() ProfileRepository
	Skills() SkillRepository
	Events() EventRepository
	Messages() MessageRepository
	NotificationSettings() NotificationSettingRepository

	// InTx runs fn atomically. Any error returned by fn discards every write
	// made through the transactional store.
	InTx(ctx context.Context, fn func(Store) error) error
}

type PostgresStore struct {
	db   database.DB
	q    database.Querier
	inTx bool
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db, q: db}
}

func (s *PostgresStore) Users() UserRepository {
	return NewPostgresUserRepository(s.q)
}

func (s *PostgresStore) Profiles() ProfileRepository {
	return NewPostgresProfileRepository(s.q)
}

func (s *PostgresStore) Skills() SkillRepository {
	return NewPostgresSkillRepository(s.q)
}

func (s *PostgresStore) Events() EventRepository {
	return NewPostgresEventRepository(s.q)
}

func (s *PostgresStore) Messages() MessageRepository {
	return NewPostgresMessageRepository(s.q)
}

func (s *PostgresStore) NotificationSettings() NotificationSettingRepository {
	return NewPostgresNotificationSettingRepository(s.q)
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(Store) error) error {
	// Already inside a transaction: nest into it.
	if s.inTx {
		return fn(s)
	}
	return database.WithTx(ctx, s.db, func(tx database.Tx) error {
		return fn(&PostgresStore{db: s.db, q: tx, inTx: true})
	})
}
