// Package event defines the outbound events pushed to connected clients.
// Event names and payload fields are the wire contract clients depend on.
package event

import (
	"time"

	"chat-relay/domain"
)

// DomainEvent is anything the engine can push to a client connection.
type DomainEvent interface {
	EventName() string
}

// MessagePayload is the wire form of a delivered or replayed message.
// ReceiverID is set for private messages, GroupID for group ones.
// Degraded marks a message shown live whose durable write failed:
// it may not survive a restart.
type MessagePayload struct {
	MessageID  string    `json:"messageId"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	ReceiverID string    `json:"receiverId,omitempty"`
	GroupID    string    `json:"groupId,omitempty"`
	Body       string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Mentions   []string  `json:"mentions,omitempty"`
	Restricted bool      `json:"isPrivateMention,omitempty"`
	Degraded   bool      `json:"degraded,omitempty"`
}

// ToPayload converts a domain message into its wire form.
func ToPayload(m domain.Message, degraded bool) MessagePayload {
	p := MessagePayload{
		MessageID:  m.ID.String(),
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Body:       m.Body,
		Timestamp:  m.CreatedAt,
		Mentions:   m.Mentions,
		Restricted: m.Restricted(),
		Degraded:   degraded,
	}
	switch m.Kind {
	case domain.KindGroup:
		p.GroupID = m.TargetID
	default:
		p.ReceiverID = m.TargetID
	}
	return p
}

type MessagePrivate struct {
	MessagePayload
}

func (MessagePrivate) EventName() string { return "message-private" }

type MessageGroup struct {
	MessagePayload
}

func (MessageGroup) EventName() string { return "message-group" }

// NewMessageEvent wraps a message payload in the event matching its kind.
func NewMessageEvent(m domain.Message, degraded bool) DomainEvent {
	payload := ToPayload(m, degraded)
	if m.Kind == domain.KindGroup {
		return MessageGroup{MessagePayload: payload}
	}
	return MessagePrivate{MessagePayload: payload}
}

// MemberJoinedGroup notifies current room subscribers that a user joined.
// Never sent to the joiner itself.
type MemberJoinedGroup struct {
	GroupID     string `json:"groupId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

func (MemberJoinedGroup) EventName() string { return "member-joined-group" }

// HistoryPrivate carries a private conversation replay, oldest first.
// Emitted to the requesting connection only.
type HistoryPrivate struct {
	PeerID   string           `json:"peerId"`
	Messages []MessagePayload `json:"messages"`
}

func (HistoryPrivate) EventName() string { return "history-private" }

// HistoryGroup carries a group conversation replay, oldest first,
// already filtered by the requesting user's visibility.
type HistoryGroup struct {
	GroupID  string           `json:"groupId"`
	Messages []MessagePayload `json:"messages"`
}

func (HistoryGroup) EventName() string { return "history-group" }
