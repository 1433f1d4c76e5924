package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"skillified/internal/database"
	"skillified/internal/domain/event"
	"skillified/internal/domain/skill"
	"skillified/internal/search"
)

type EventFilter struct {
	Query string
	// From and To bound date_time as [From, To) when non-nil.
	From *time.Time
	To   *time.Time
}

type EventRepository interface {
	List(ctx context.Context, f EventFilter) ([]event.Event, error)
	ListBySkill(ctx context.Context, skillID int64) ([]event.Event, error)
	GetByID(ctx context.Context, id int64) (event.Event, error)
	Create(ctx context.Context, e event.Event) (event.Event, error)
	// Update replaces title, overview and date_time.
	Update(ctx context.Context, e event.Event) (event.Event, error)
	Delete(ctx context.Context, id int64) error
	// AddParticipant is a no-op for an existing participant.
	AddParticipant(ctx context.Context, eventID, userID int64) error
	// RemoveParticipant is a no-op for a non-participant.
	RemoveParticipant(ctx context.Context, eventID, userID int64) error
}

type PostgresEventRepository struct {
	db database.Querier
}

func NewPostgresEventRepository(db database.Querier) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

const eventSelect = `SELECT e.id, e.title, e.overview, e.date_time, e.skill_id, e.owner_id, e.created_at, e.updated_at,
	COALESCE((SELECT array_agg(ep.user_id ORDER BY ep.joined_at, ep.user_id)
		FROM event_participants ep WHERE ep.event_id = e.id), '{}'::bigint[])
	FROM events e`

func scanEvent(row database.Row) (event.Event, error) {
	var e event.Event
	err := row.Scan(&e.ID, &e.Title, &e.Overview, &e.DateTime, &e.SkillID, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt, &e.Participants)
	if err != nil {
		return event.Event{}, err
	}
	e.DateTime = e.DateTime.UTC()
	if e.Participants == nil {
		e.Participants = []int64{}
	}
	return e, nil
}

func collectEvents(rows database.Rows) ([]event.Event, error) {
	defer rows.Close()

	out := make([]event.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresEventRepository) List(ctx context.Context, f EventFilter) ([]event.Event, error) {
	var (
		where []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if q := search.NormalizeQuery(f.Query); q != "" {
		p := next(search.LikePattern(q))
		where = append(where, `(e.title ILIKE `+p+` ESCAPE '\' OR e.overview ILIKE `+p+` ESCAPE '\')`)
	}
	if f.From != nil {
		where = append(where, `e.date_time >= `+next(f.From.UTC()))
	}
	if f.To != nil {
		where = append(where, `e.date_time < `+next(f.To.UTC()))
	}

	query := eventSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY e.date_time ASC, e.id ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *PostgresEventRepository) ListBySkill(ctx context.Context, skillID int64) ([]event.Event, error) {
	rows, err := r.db.Query(ctx, eventSelect+` WHERE e.skill_id = $1 ORDER BY e.date_time ASC, e.id ASC`, skillID)
	if err != nil {
		return nil, err
	}
	return collectEvents(rows)
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id int64) (event.Event, error) {
	e, err := scanEvent(r.db.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return event.Event{}, event.ErrNotFound
		}
		return event.Event{}, err
	}
	return e, nil
}

func (r *PostgresEventRepository) Create(ctx context.Context, e event.Event) (event.Event, error) {
	var id int64
	row := r.db.QueryRow(ctx,
		`INSERT INTO events (title, overview, date_time, skill_id, owner_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		e.Title, e.Overview, e.DateTime.UTC(), e.SkillID, e.OwnerID,
	)
	if err := row.Scan(&id); err != nil {
		if isForeignKeyViolation(err) {
			return event.Event{}, skill.ErrNotFound
		}
		return event.Event{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresEventRepository) Update(ctx context.Context, e event.Event) (event.Event, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE events SET title = $1, overview = $2, date_time = $3, updated_at = now() WHERE id = $4`,
		e.Title, e.Overview, e.DateTime.UTC(), e.ID,
	)
	if err != nil {
		return event.Event{}, err
	}
	if affected == 0 {
		return event.Event{}, event.ErrNotFound
	}
	return r.GetByID(ctx, e.ID)
}

func (r *PostgresEventRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return event.ErrNotFound
	}
	return nil
}

func (r *PostgresEventRepository) AddParticipant(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO event_participants (event_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		eventID, userID,
	)
	if err != nil {
		// Callers load the event first, so a dangling reference means it was
		// deleted concurrently.
		if isForeignKeyViolation(err) {
			return event.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *PostgresEventRepository) RemoveParticipant(ctx context.Context, eventID, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM event_participants WHERE event_id = $1 AND user_id = $2`, eventID, userID)
	return err
}
