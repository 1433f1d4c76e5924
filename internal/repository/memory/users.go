package memory

import (
	"context"
	"slices"
	"strings"

	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
)

type userRepo struct{ v view }

func (r userRepo) Create(_ context.Context, u user.User) (user.User, error) {
	var created user.User
	err := r.v.write(func(d *dataset) error {
		username := strings.TrimSpace(u.Username)
		for _, existing := range d.users {
			if existing.Username == username {
				return user.ErrUsernameTaken
			}
		}
		d.lastUserID++
		now := r.v.now()
		created = user.User{
			ID:           d.lastUserID,
			Username:     username,
			Email:        strings.TrimSpace(u.Email),
			PasswordHash: u.PasswordHash,
			TokenVersion: 1,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		d.users[created.ID] = created
		return nil
	})
	return created, err
}

func (r userRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	var out user.User
	err := r.v.read(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return user.ErrNotFound
		}
		out = u
		return nil
	})
	return out, err
}

func (r userRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	var out user.User
	err := r.v.read(func(d *dataset) error {
		username = strings.TrimSpace(username)
		for _, u := range d.users {
			if u.Username == username {
				out = u
				return nil
			}
		}
		return user.ErrNotFound
	})
	return out, err
}

func (r userRepo) UpdateAccount(_ context.Context, id int64, username, email string) error {
	return r.v.write(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return user.ErrNotFound
		}
		for otherID, other := range d.users {
			if otherID != id && other.Username == username {
				return user.ErrUsernameTaken
			}
		}
		u.Username = username
		u.Email = email
		u.UpdatedAt = r.v.now()
		d.users[id] = u
		return nil
	})
}

func (r userRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) (int, error) {
	var version int
	err := r.v.write(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return user.ErrNotFound
		}
		u.PasswordHash = passwordHash
		u.TokenVersion++
		u.UpdatedAt = r.v.now()
		d.users[id] = u
		version = u.TokenVersion
		return nil
	})
	return version, err
}

func (r userRepo) ListByIDs(_ context.Context, ids []int64) ([]user.User, error) {
	out := make([]user.User, 0, len(ids))
	err := r.v.read(func(d *dataset) error {
		want := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			want[id] = struct{}{}
		}
		for _, id := range sortedKeys(d.users) {
			if _, ok := want[id]; ok {
				out = append(out, d.users[id])
			}
		}
		return nil
	})
	return out, err
}

type profileRepo struct{ v view }

func (r profileRepo) Ensure(_ context.Context, userID int64) (user.Profile, error) {
	var out user.Profile
	err := r.v.write(func(d *dataset) error {
		if _, ok := d.users[userID]; !ok {
			return user.ErrNotFound
		}
		p, ok := d.profiles[userID]
		if !ok {
			now := r.v.now()
			p = user.Profile{UserID: userID, CreatedAt: now, UpdatedAt: now}
			d.profiles[userID] = p
		}
		out = p
		return nil
	})
	return out, err
}

func (r profileRepo) Update(_ context.Context, p user.Profile) (user.Profile, error) {
	var out user.Profile
	err := r.v.write(func(d *dataset) error {
		existing, ok := d.profiles[p.UserID]
		if !ok {
			return user.ErrNotFound
		}
		p.CreatedAt = existing.CreatedAt
		p.UpdatedAt = r.v.now()
		d.profiles[p.UserID] = p
		out = p
		return nil
	})
	return out, err
}

func (r profileRepo) ListSkills(_ context.Context, userID int64) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0)
	err := r.v.read(func(d *dataset) error {
		ids := append([]int64(nil), d.profileSkills[userID]...)
		slices.Sort(ids)
		for _, id := range ids {
			if s, ok := d.skills[id]; ok {
				out = append(out, s)
			}
		}
		return nil
	})
	return out, err
}

func (r profileRepo) AddSkill(_ context.Context, userID, skillID int64) error {
	return r.v.write(func(d *dataset) error {
		return addProfileSkill(d, userID, skillID)
	})
}

func addProfileSkill(d *dataset, userID, skillID int64) error {
	if _, ok := d.profiles[userID]; !ok {
		return user.ErrNotFound
	}
	if _, ok := d.skills[skillID]; !ok {
		return skill.ErrNotFound
	}
	for _, id := range d.profileSkills[userID] {
		if id == skillID {
			return nil
		}
	}
	d.profileSkills[userID] = append(d.profileSkills[userID], skillID)
	return nil
}

func (r profileRepo) RemoveSkill(_ context.Context, userID, skillID int64) error {
	return r.v.write(func(d *dataset) error {
		d.profileSkills[userID] = removeID(d.profileSkills[userID], skillID)
		return nil
	})
}

func (r profileRepo) ReplaceSkills(_ context.Context, userID int64, skillIDs []int64) error {
	return r.v.write(func(d *dataset) error {
		prev := d.profileSkills[userID]
		d.profileSkills[userID] = nil
		for _, id := range skillIDs {
			if err := addProfileSkill(d, userID, id); err != nil {
				d.profileSkills[userID] = prev
				return err
			}
		}
		return nil
	})
}

type settingRepo struct{ v view }

func (r settingRepo) Ensure(_ context.Context, userID int64) (user.NotificationSetting, error) {
	var out user.NotificationSetting
	err := r.v.write(func(d *dataset) error {
		if _, ok := d.users[userID]; !ok {
			return user.ErrNotFound
		}
		s, ok := d.settings[userID]
		if !ok {
			s = user.DefaultNotificationSetting(userID)
			s.UpdatedAt = r.v.now()
			d.settings[userID] = s
		}
		out = s
		return nil
	})
	return out, err
}

func (r settingRepo) Save(_ context.Context, s user.NotificationSetting) (user.NotificationSetting, error) {
	err := r.v.write(func(d *dataset) error {
		if _, ok := d.users[s.UserID]; !ok {
			return user.ErrNotFound
		}
		s.UpdatedAt = r.v.now()
		d.settings[s.UserID] = s
		return nil
	})
	if err != nil {
		return user.NotificationSetting{}, err
	}
	return s, nil
}

func (r settingRepo) ListByUserIDs(_ context.Context, userIDs []int64) (map[int64]user.NotificationSetting, error) {
	out := make(map[int64]user.NotificationSetting, len(userIDs))
	err := r.v.read(func(d *dataset) error {
		for _, id := range userIDs {
			if s, ok := d.settings[id]; ok {
				out[id] = s
				continue
			}
			out[id] = user.DefaultNotificationSetting(id)
		}
		return nil
	})
	return out, err
}

func removeID(ids []int64, target int64) []int64 {
	out := ids[:0:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
