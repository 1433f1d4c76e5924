// Package memory is a process-local implementation of repository.Store used
// by tests and the memory store driver.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"skillified/internal/domain/event"
	"skillified/internal/domain/message"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
	"skillified/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type dataset struct {
	lastUserID    int64
	lastSkillID   int64
	lastEventID   int64
	lastMessageID int64

	users    map[int64]user.User
	profiles map[int64]user.Profile
	// profileSkills keeps skill ids per user in the order they were added.
	profileSkills map[int64][]int64
	skills        map[int64]skill.Skill
	events        map[int64]event.Event
	messages      []message.Message
	settings      map[int64]user.NotificationSetting
}

func newDataset() *dataset {
	return &dataset{
		users:         map[int64]user.User{},
		profiles:      map[int64]user.Profile{},
		profileSkills: map[int64][]int64{},
		skills:        map[int64]skill.Skill{},
		events:        map[int64]event.Event{},
		messages:      []message.Message{},
		settings:      map[int64]user.NotificationSetting{},
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		lastUserID:    d.lastUserID,
		lastSkillID:   d.lastSkillID,
		lastEventID:   d.lastEventID,
		lastMessageID: d.lastMessageID,
		users:         make(map[int64]user.User, len(d.users)),
		profiles:      make(map[int64]user.Profile, len(d.profiles)),
		profileSkills: make(map[int64][]int64, len(d.profileSkills)),
		skills:        make(map[int64]skill.Skill, len(d.skills)),
		events:        make(map[int64]event.Event, len(d.events)),
		messages:      append([]message.Message(nil), d.messages...),
		settings:      make(map[int64]user.NotificationSetting, len(d.settings)),
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.profiles {
		c.profiles[k] = v
	}
	for k, v := range d.profileSkills {
		c.profileSkills[k] = append([]int64(nil), v...)
	}
	for k, v := range d.skills {
		c.skills[k] = v
	}
	for k, v := range d.events {
		c.events[k] = copyEvent(v)
	}
	for k, v := range d.settings {
		c.settings[k] = v
	}
	return c
}

func copyEvent(e event.Event) event.Event {
	e.Participants = append([]int64{}, e.Participants...)
	return e
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Store keeps every record in memory. Transactions are serialized and roll
// back by restoring a snapshot; reads outside a transaction may observe
// writes of one in progress.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *dataset
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{data: newDataset(), now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the timestamp source. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) root() view {
	return view{st: s}
}

func (s *Store) Users() repository.UserRepository { return userRepo{s.root()} }
func (s *Store) Profiles() repository.ProfileRepository { return profileRepo{s.root()} }
func (s *Store) Skills() repository.SkillRepository { return skillRepo{s.root()} }
func (s *Store) Events() repository.EventRepository { return eventRepo{s.root()} }
func (s *Store) Messages() repository.MessageRepository { return messageRepo{s.root()} }
func (s *Store) NotificationSettings() repository.NotificationSettingRepository {
	return settingRepo{s.root()}
}

func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) (err error) {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	restore := func() {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
	}
	defer func() {
		if p := recover(); p != nil {
			restore()
			panic(p)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err = fn(txStore{view{st: s, inTx: true}}); err != nil {
		restore()
		return err
	}
	return nil
}

type txStore struct {
	v view
}

func (t txStore) Users() repository.UserRepository { return userRepo{t.v} }
func (t txStore) Profiles() repository.ProfileRepository { return profileRepo{t.v} }
func (t txStore) Skills() repository.SkillRepository { return skillRepo{t.v} }
func (t txStore) Events() repository.EventRepository { return eventRepo{t.v} }
func (t txStore) Messages() repository.MessageRepository { return messageRepo{t.v} }
func (t txStore) NotificationSettings() repository.NotificationSettingRepository {
	return settingRepo{t.v}
}

func (t txStore) InTx(_ context.Context, fn func(repository.Store) error) error {
	return fn(t)
}

type view struct {
	st   *Store
	inTx bool
}

func (v view) read(fn func(d *dataset) error) error {
	v.st.mu.RLock()
	defer v.st.mu.RUnlock()
	return fn(v.st.data)
}

func (v view) write(fn func(d *dataset) error) error {
	if !v.inTx {
		v.st.txMu.Lock()
		defer v.st.txMu.Unlock()
	}
	v.st.mu.Lock()
	defer v.st.mu.Unlock()
	return fn(v.st.data)
}

func (v view) now() time.Time {
	return v.st.now()
}
