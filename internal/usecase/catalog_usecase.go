package usecase

import (
	"context"
	"strings"
	"time"

	"skillified/internal/domain"
	"skillified/internal/domain/event"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
	"skillified/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultPopularLimit = 5
	maxPopularLimit     = 50
	eventDateLayout     = "2006-01-02"
)

type SkillListParams struct {
	Query      string `json:"q"`
	MentorOnly bool   `json:"mentor_only"`
}

type EventListParams struct {
	Query string `json:"q"`
	// OnDate is a calendar date in YYYY-MM-DD form. Empty means any date.
	OnDate string `json:"on_date"`
}

type SkillDetail struct {
	Skill  skill.Skill
	Events []event.Event
}

type EventDetail struct {
	Event        event.Event
	Skill        skill.Skill
	Owner        user.User
	Participants []user.User
	IsOwner      bool
	IsRegistered bool
}

type CatalogUsecase interface {
	ListSkills(ctx context.Context, params SkillListParams) ([]skill.Skill, error)
	PopularSkills(ctx context.Context, limit int) ([]skill.Popular, error)
	ListEvents(ctx context.Context, params EventListParams) ([]event.Event, error)
	GetSkill(ctx context.Context, actor domain.Actor, id int64) (SkillDetail, error)
	GetEvent(ctx context.Context, actor domain.Actor, id int64) (EventDetail, error)
}

type Catalog struct {
	store  repository.Store
	cache  Cache
	ttl    time.Duration
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

func NewCatalogUsecase(store repository.Store, cache Cache, ttl time.Duration, loc *time.Location, logger *zap.Logger) *Catalog {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		store:  store,
		cache:  cacheOrNop(cache),
		ttl:    ttl,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
}

// cached serves key from the cache or fills it with load. Cache failures
// fall through to load.
func cached[T any](ctx context.Context, c *Catalog, key string, load func() (T, error)) (T, error) {
	var out T
	if ok, err := c.cache.GetJSON(ctx, key, &out); err == nil && ok {
		return out, nil
	}

	out, err := load()
	if err != nil {
		return out, err
	}
	if err := c.cache.SetJSON(ctx, key, out, c.ttl); err != nil {
		c.logger.Debug("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return out, nil
}

func (c *Catalog) ListSkills(ctx context.Context, params SkillListParams) ([]skill.Skill, error) {
	params.Query = strings.TrimSpace(params.Query)
	key := catalogCacheKey("skills", SkillListParams{Query: normalizeSearchValue(params.Query), MentorOnly: params.MentorOnly})

	return cached(ctx, c, key, func() ([]skill.Skill, error) {
		items, err := c.store.Skills().List(ctx, repository.SkillFilter{Query: params.Query, MentorOnly: params.MentorOnly})
		if err != nil {
			return nil, internalError(err)
		}
		return items, nil
	})
}

func (c *Catalog) PopularSkills(ctx context.Context, limit int) ([]skill.Popular, error) {
	if limit <= 0 {
		limit = defaultPopularLimit
	}
	if limit > maxPopularLimit {
		limit = maxPopularLimit
	}
	now := c.now().UTC()
	key := catalogCacheKey("popular", struct {
		Limit  int       `json:"limit"`
		Minute time.Time `json:"minute"`
	}{Limit: limit, Minute: now.Truncate(time.Minute)})

	return cached(ctx, c, key, func() ([]skill.Popular, error) {
		items, err := c.store.Skills().Popular(ctx, now, limit)
		if err != nil {
			return nil, internalError(err)
		}
		return items, nil
	})
}

func (c *Catalog) ListEvents(ctx context.Context, params EventListParams) ([]event.Event, error) {
	params.Query = strings.TrimSpace(params.Query)
	params.OnDate = strings.TrimSpace(params.OnDate)

	filter := repository.EventFilter{Query: params.Query}
	if params.OnDate != "" {
		day, err := time.ParseInLocation(eventDateLayout, params.OnDate, c.loc)
		if err != nil {
			return nil, domain.NewFieldError("event_date", domain.MsgInvalidDate)
		}
		from, to := event.DayBounds(day, c.loc)
		filter.From, filter.To = &from, &to
	}

	key := catalogCacheKey("events", EventListParams{Query: normalizeSearchValue(params.Query), OnDate: params.OnDate})
	return cached(ctx, c, key, func() ([]event.Event, error) {
		items, err := c.store.Events().List(ctx, filter)
		if err != nil {
			return nil, internalError(err)
		}
		return items, nil
	})
}

func (c *Catalog) GetSkill(ctx context.Context, actor domain.Actor, id int64) (SkillDetail, error) {
	if err := requireAuthenticated(actor); err != nil {
		return SkillDetail{}, err
	}

	s, err := c.store.Skills().GetByID(ctx, id)
	if err != nil {
		return SkillDetail{}, translate(err, id)
	}
	events, err := c.store.Events().ListBySkill(ctx, id)
	if err != nil {
		return SkillDetail{}, internalError(err)
	}
	return SkillDetail{Skill: s, Events: events}, nil
}

func (c *Catalog) GetEvent(ctx context.Context, actor domain.Actor, id int64) (EventDetail, error) {
	if err := requireAuthenticated(actor); err != nil {
		return EventDetail{}, err
	}

	e, err := c.store.Events().GetByID(ctx, id)
	if err != nil {
		return EventDetail{}, translate(err, id)
	}
	s, err := c.store.Skills().GetByID(ctx, e.SkillID)
	if err != nil {
		return EventDetail{}, translate(err, e.SkillID)
	}

	ids := append([]int64{e.OwnerID}, e.Participants...)
	users, err := c.store.Users().ListByIDs(ctx, ids)
	if err != nil {
		return EventDetail{}, internalError(err)
	}
	byID := make(map[int64]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u.Sanitized()
	}

	participants := make([]user.User, 0, len(e.Participants))
	for _, pid := range e.Participants {
		if u, ok := byID[pid]; ok {
			participants = append(participants, u)
		}
	}

	return EventDetail{
		Event:        e,
		Skill:        s,
		Owner:        byID[e.OwnerID],
		Participants: participants,
		IsOwner:      e.IsOwnedBy(actor.UserID),
		IsRegistered: e.HasParticipant(actor.UserID),
	}, nil
}
