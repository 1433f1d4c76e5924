package ws

import (
	"context"
	"encoding/json"
	"time"

	"skillified/internal/domain"
	"skillified/internal/domain/event"
	"skillified/internal/domain/message"
	"skillified/internal/domain/skill"
	"skillified/internal/domain/user"
	"skillified/internal/repository"

	"go.uber.org/zap"
)

const (
	NoticeNewSkill   = "new_skill"
	NoticeNewEvent   = "new_event"
	NoticeNewMessage = "new_message"
)

type Notice struct {
	Type      string `json:"type"`
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	AuthorID  int64  `json:"author_id"`
	Timestamp string `json:"timestamp"`
}

// Notifier pushes notices to connected users whose notification settings
// allow them.
type Notifier struct {
	hub      *Hub
	settings repository.NotificationSettingRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewNotifier(hub *Hub, settings repository.NotificationSettingRepository, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{hub: hub, settings: settings, logger: logger, now: time.Now}
}

func (n *Notifier) SkillCreated(ctx context.Context, author domain.Actor, s skill.Skill) {
	n.fanOut(ctx, author.UserID, Notice{Type: NoticeNewSkill, ID: s.ID, Title: s.Name, AuthorID: author.UserID},
		func(ns user.NotificationSetting) bool { return ns.NewSkill })
}

func (n *Notifier) EventCreated(ctx context.Context, author domain.Actor, e event.Event) {
	n.fanOut(ctx, author.UserID, Notice{Type: NoticeNewEvent, ID: e.ID, Title: e.Title, AuthorID: author.UserID},
		func(ns user.NotificationSetting) bool { return ns.NewEvent })
}

func (n *Notifier) MessageSent(ctx context.Context, m message.Message) {
	notice := Notice{Type: NoticeNewMessage, ID: m.ID, AuthorID: m.SenderID}
	n.deliver(ctx, []int64{m.ReceiverID}, notice, func(ns user.NotificationSetting) bool { return ns.NewMessage })
}

// fanOut notifies every connected user except the author.
func (n *Notifier) fanOut(ctx context.Context, authorID int64, notice Notice, wants func(user.NotificationSetting) bool) {
	ids := n.hub.ConnectedUserIDs()
	recipients := ids[:0]
	for _, id := range ids {
		if id != authorID {
			recipients = append(recipients, id)
		}
	}
	n.deliver(ctx, recipients, notice, wants)
}

func (n *Notifier) deliver(ctx context.Context, userIDs []int64, notice Notice, wants func(user.NotificationSetting) bool) {
	if n == nil || n.hub == nil || len(userIDs) == 0 {
		return
	}

	prefs, err := n.settings.ListByUserIDs(ctx, userIDs)
	if err != nil {
		n.logger.Warn("notification settings lookup failed", zap.String("type", notice.Type), zap.Error(err))
		return
	}

	notice.Timestamp = n.now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(notice)
	if err != nil {
		n.logger.Error("notice encode failed", zap.String("type", notice.Type), zap.Error(err))
		return
	}

	sent := 0
	for _, id := range userIDs {
		ns, ok := prefs[id]
		if !ok {
			ns = user.DefaultNotificationSetting(id)
		}
		if !wants(ns) {
			continue
		}
		sent += n.hub.SendToUser(id, payload)
	}
	n.logger.Debug("notice delivered", zap.String("type", notice.Type), zap.Int64("id", notice.ID), zap.Int("connections", sent))
}
