package memory

import (
	"context"

	"skillified/internal/domain/message"
	"skillified/internal/domain/user"
)

type messageRepo struct{ v view }

func (r messageRepo) Create(_ context.Context, m message.Message) (message.Message, error) {
	err := r.v.write(func(d *dataset) error {
		if _, ok := d.users[m.SenderID]; !ok {
			return user.ErrNotFound
		}
		if _, ok := d.users[m.ReceiverID]; !ok {
			return user.ErrNotFound
		}
		d.lastMessageID++
		m.ID = d.lastMessageID
		m.Timestamp = r.v.now()
		d.messages = append(d.messages, m)
		return nil
	})
	if err != nil {
		return message.Message{}, err
	}
	return m, nil
}

func (r messageRepo) ListForUser(_ context.Context, userID int64) ([]message.Message, error) {
	out := make([]message.Message, 0)
	err := r.v.read(func(d *dataset) error {
		for _, m := range d.messages {
			if m.SenderID == userID || m.ReceiverID == userID {
				out = append(out, m)
			}
		}
		return nil
	})
	return out, err
}
