package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"skillified/internal/domain"
	"skillified/internal/domain/event"
	"skillified/internal/domain/message"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
	"skillified/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c *Client) []Notice {
	var out []Notice
	for {
		select {
		case b, ok := <-c.send:
			if !ok {
				return out
			}
			var n Notice
			if err := json.Unmarshal(b, &n); err == nil {
				out = append(out, n)
			}
		default:
			return out
		}
	}
}

func TestHub_RegisterSendUnregister(t *testing.T) {
	h := NewHub(nil)
	a1, err := h.Register(1, nil)
	require.NoError(t, err)
	a2, err := h.Register(1, nil)
	require.NoError(t, err)
	b, err := h.Register(2, nil)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, h.ConnectedUserIDs())
	assert.Equal(t, 3, h.ClientCount())

	assert.Equal(t, 2, h.SendToUser(1, []byte(`{}`)))
	assert.Len(t, a1.send, 1)
	assert.Len(t, a2.send, 1)
	assert.Empty(t, b.send)

	h.Unregister(a1)
	h.Unregister(a1)
	assert.Equal(t, 1, h.SendToUser(1, []byte(`{}`)))

	h.Unregister(a2)
	assert.Equal(t, []int64{2}, h.ConnectedUserIDs())
	assert.Zero(t, h.SendToUser(1, []byte(`{}`)))
}

func TestHub_LimitsAndBackpressure(t *testing.T) {
	h := NewHub(nil)
	var c *Client
	for i := 0; i < maxConnsPerUser; i++ {
		var err error
		c, err = h.Register(7, nil)
		require.NoError(t, err)
	}
	_, err := h.Register(7, nil)
	assert.ErrorIs(t, err, ErrTooManyConnections)

	for i := 0; i < sendBuffer; i++ {
		require.True(t, c.trySend([]byte("x")))
	}
	assert.False(t, c.trySend([]byte("x")))

	h.Close()
	assert.Zero(t, h.ClientCount())
	h.Unregister(c)
}

func TestNotifier_RespectsPreferences(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	mk := func(name string, ns *user.NotificationSetting) int64 {
		u, err := st.Users().Create(ctx, user.User{Username: name, PasswordHash: "x"})
		require.NoError(t, err)
		if ns != nil {
			ns.UserID = u.ID
			_, err = st.NotificationSettings().Save(ctx, *ns)
			require.NoError(t, err)
		}
		return u.ID
	}
	author := mk("author", nil)
	eager := mk("eager", nil)
	quiet := mk("quiet", &user.NotificationSetting{NewMessage: true})

	h := NewHub(nil)
	authorConn, _ := h.Register(author, nil)
	eagerConn, _ := h.Register(eager, nil)
	quietConn, _ := h.Register(quiet, nil)

	n := NewNotifier(h, st.NotificationSettings(), nil)
	n.now = func() time.Time { return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC) }

	n.SkillCreated(ctx, domain.Actor{UserID: author}, skill.Skill{ID: 3, Name: "Guitar"})
	n.EventCreated(ctx, domain.Actor{UserID: author}, event.Event{ID: 4, Title: "Jam"})
	n.MessageSent(ctx, message.Message{ID: 5, SenderID: author, ReceiverID: quiet})

	assert.Empty(t, drain(authorConn))

	got := drain(eagerConn)
	require.Len(t, got, 2)
	assert.Equal(t, Notice{Type: NoticeNewSkill, ID: 3, Title: "Guitar", AuthorID: author, Timestamp: "2030-01-01T00:00:00Z"}, got[0])
	assert.Equal(t, NoticeNewEvent, got[1].Type)

	got = drain(quietConn)
	require.Len(t, got, 1)
	assert.Equal(t, NoticeNewMessage, got[0].Type)
	assert.Equal(t, int64(5), got[0].ID)
}
