package message

import "time"

// Message is immutable once stored.
type Message struct {
	ID         int64
	SenderID   int64
	ReceiverID int64
	Content    string
	Timestamp  time.Time
}
