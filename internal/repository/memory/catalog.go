package memory

import (
	"context"
	"sort"
	"time"

	"skillified/internal/domain/event"
	"skillified/internal/domain/skill"
	"skillified/internal/repository"
	"skillified/internal/search"
)

type skillRepo struct{ v view }

func (r skillRepo) List(_ context.Context, f repository.SkillFilter) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)
	err := r.v.read(func(d *dataset) error {
		var mentorSkills map[int64]bool
		if f.MentorOnly {
			mentorSkills = map[int64]bool{}
			for uid, p := range d.profiles {
				if !p.IsMentor {
					continue
				}
				for _, sid := range d.profileSkills[uid] {
					mentorSkills[sid] = true
				}
			}
		}
		for _, id := range sortedKeys(d.skills) {
			s := d.skills[id]
			if f.MentorOnly && !mentorSkills[id] {
				continue
			}
			if !search.Matches(f.Query, s.Name, s.Description) {
				continue
			}
			out = append(out, s)
		}
		return nil
	})
	return out, err
}

func (r skillRepo) GetByID(_ context.Context, id int64) (skill.Skill, error) {
	var out skill.Skill
	err := r.v.read(func(d *dataset) error {
		s, ok := d.skills[id]
		if !ok {
			return skill.ErrNotFound
		}
		out = s
		return nil
	})
	return out, err
}

func (r skillRepo) FindByName(_ context.Context, name string, description *string) (skill.Skill, error) {
	var out skill.Skill
	err := r.v.read(func(d *dataset) error {
		for _, id := range sortedKeys(d.skills) {
			s := d.skills[id]
			if s.Name != name {
				continue
			}
			if description != nil && s.Description != *description {
				continue
			}
			out = s
			return nil
		}
		return skill.ErrNotFound
	})
	return out, err
}

func (r skillRepo) Create(_ context.Context, s skill.Skill) (skill.Skill, error) {
	err := r.v.write(func(d *dataset) error {
		d.lastSkillID++
		now := r.v.now()
		s.ID = d.lastSkillID
		s.CreatedAt = now
		s.UpdatedAt = now
		d.skills[s.ID] = s
		return nil
	})
	if err != nil {
		return skill.Skill{}, err
	}
	return s, nil
}

func (r skillRepo) Update(_ context.Context, s skill.Skill) (skill.Skill, error) {
	var out skill.Skill
	err := r.v.write(func(d *dataset) error {
		existing, ok := d.skills[s.ID]
		if !ok {
			return skill.ErrNotFound
		}
		existing.Name = s.Name
		existing.Description = s.Description
		existing.UpdatedAt = r.v.now()
		d.skills[s.ID] = existing
		out = existing
		return nil
	})
	return out, err
}

func (r skillRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.skills[id]; !ok {
			return skill.ErrNotFound
		}
		delete(d.skills, id)
		for eid, e := range d.events {
			if e.SkillID == id {
				delete(d.events, eid)
			}
		}
		for uid, ids := range d.profileSkills {
			d.profileSkills[uid] = removeID(ids, id)
		}
		return nil
	})
}

func (r skillRepo) Popular(_ context.Context, since time.Time, limit int) ([]skill.Popular, error) {
	var ranked []skill.Popular
	err := r.v.read(func(d *dataset) error {
		participants := map[int64]map[int64]struct{}{}
		for _, e := range d.events {
			if e.DateTime.Before(since) {
				continue
			}
			set, ok := participants[e.SkillID]
			if !ok {
				set = map[int64]struct{}{}
				participants[e.SkillID] = set
			}
			for _, uid := range e.Participants {
				set[uid] = struct{}{}
			}
		}

		candidates := make([]skill.Popular, 0, len(participants))
		for _, id := range sortedKeys(participants) {
			s, ok := d.skills[id]
			if !ok {
				continue
			}
			candidates = append(candidates, skill.Popular{Skill: s, ParticipantCount: len(participants[id])})
		}
		ranked = search.RankStable(candidates, func(p skill.Popular) int { return p.ParticipantCount })
		return nil
	})
	if err != nil {
		return nil, err
	}
	return search.Limit(ranked, limit), nil
}

type eventRepo struct{ v view }

func sortEvents(events []event.Event) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].DateTime.Equal(events[j].DateTime) {
			return events[i].DateTime.Before(events[j].DateTime)
		}
		return events[i].ID < events[j].ID
	})
}

func (r eventRepo) List(_ context.Context, f repository.EventFilter) ([]event.Event, error) {
	out := make([]event.Event, 0)
	err := r.v.read(func(d *dataset) error {
		for _, e := range d.events {
			if f.From != nil && e.DateTime.Before(*f.From) {
				continue
			}
			if f.To != nil && !e.DateTime.Before(*f.To) {
				continue
			}
			if !search.Matches(f.Query, e.Title, e.Overview) {
				continue
			}
			out = append(out, copyEvent(e))
		}
		return nil
	})
	sortEvents(out)
	return out, err
}

func (r eventRepo) ListBySkill(_ context.Context, skillID int64) ([]event.Event, error) {
	out := make([]event.Event, 0)
	err := r.v.read(func(d *dataset) error {
		for _, e := range d.events {
			if e.SkillID == skillID {
				out = append(out, copyEvent(e))
			}
		}
		return nil
	})
	sortEvents(out)
	return out, err
}

func (r eventRepo) GetByID(_ context.Context, id int64) (event.Event, error) {
	var out event.Event
	err := r.v.read(func(d *dataset) error {
		e, ok := d.events[id]
		if !ok {
			return event.ErrNotFound
		}
		out = copyEvent(e)
		return nil
	})
	return out, err
}

func (r eventRepo) Create(_ context.Context, e event.Event) (event.Event, error) {
	err := r.v.write(func(d *dataset) error {
		if _, ok := d.skills[e.SkillID]; !ok {
			return skill.ErrNotFound
		}
		d.lastEventID++
		now := r.v.now()
		e.ID = d.lastEventID
		e.DateTime = e.DateTime.UTC()
		e.Participants = []int64{}
		e.CreatedAt = now
		e.UpdatedAt = now
		d.events[e.ID] = e
		return nil
	})
	if err != nil {
		return event.Event{}, err
	}
	return copyEvent(e), nil
}

func (r eventRepo) Update(_ context.Context, e event.Event) (event.Event, error) {
	var out event.Event
	err := r.v.write(func(d *dataset) error {
		existing, ok := d.events[e.ID]
		if !ok {
			return event.ErrNotFound
		}
		existing.Title = e.Title
		existing.Overview = e.Overview
		existing.DateTime = e.DateTime.UTC()
		existing.UpdatedAt = r.v.now()
		d.events[e.ID] = existing
		out = copyEvent(existing)
		return nil
	})
	return out, err
}

func (r eventRepo) Delete(_ context.Context, id int64) error {
	return r.v.write(func(d *dataset) error {
		if _, ok := d.events[id]; !ok {
			return event.ErrNotFound
		}
		delete(d.events, id)
		return nil
	})
}

func (r eventRepo) AddParticipant(_ context.Context, eventID, userID int64) error {
	return r.v.write(func(d *dataset) error {
		e, ok := d.events[eventID]
		if !ok {
			return event.ErrNotFound
		}
		if e.HasParticipant(userID) {
			return nil
		}
		e.Participants = append(append([]int64{}, e.Participants...), userID)
		d.events[eventID] = e
		return nil
	})
}

func (r eventRepo) RemoveParticipant(_ context.Context, eventID, userID int64) error {
	return r.v.write(func(d *dataset) error {
		e, ok := d.events[eventID]
		if !ok {
			return nil
		}
		e.Participants = removeID(e.Participants, userID)
		d.events[eventID] = e
		return nil
	})
}
