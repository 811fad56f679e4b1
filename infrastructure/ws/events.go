package ws

import "encoding/json"

// Inbound event names. Together with the outbound events in domain/event,
// these are the wire contract clients depend on.
const (
	EventJoinPrivate           = "join-private"
	EventJoinGroup             = "join-group"
	EventLeavePrivate          = "leave-private"
	EventLeaveGroup            = "leave-group"
	EventRequestHistoryPrivate = "request-history-private"
	EventRequestHistoryGroup   = "request-history-group"
	EventSendPrivate           = "send-private"
	EventSendGroup             = "send-group"
)

// Envelope frames every inbound message: an event name plus its payload.
type Envelope struct {
	Event string          `json:"event" validate:"required"`
	Data  json.RawMessage `json:"data"`
}

type JoinPrivateRequest struct {
	SelfID      string `json:"senderId" validate:"required"`
	PeerID      string `json:"receiverId" validate:"required"`
	DisplayName string `json:"displayName"`
}

type JoinGroupRequest struct {
	SelfID      string `json:"userId" validate:"required"`
	GroupID     string `json:"groupId" validate:"required"`
	DisplayName string `json:"displayName"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type HistoryPrivateRequest struct {
	PeerID string `json:"receiverId" validate:"required"`
}

type HistoryGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
}

type SendPrivateRequest struct {
	PeerID string `json:"receiverId" validate:"required"`
	Body   string `json:"message" validate:"required"`
}

type SendGroupRequest struct {
	GroupID string `json:"groupId" validate:"required"`
	Body    string `json:"message" validate:"required"`
}
