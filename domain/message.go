// Package domain contains core concepts of the chat routing engine.
// This file defines Message events and the visibility invariants attached to them.
// Messages are immutable and carry no runtime, network, or storage logic.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes a pairwise conversation message from a group one.
type Kind string

const (
	KindPrivate Kind = "private"
	KindGroup   Kind = "group"
)

// Message represents an immutable chat event.
// TargetID is the peer user id for a private message, the group id otherwise.
// VisibleTo nil means the message is visible to every room member;
// a non-nil set always contains the sender plus the resolved mentioned members.
type Message struct {
	ID         uuid.UUID
	Kind       Kind
	SenderID   string
	SenderName string
	TargetID   string
	Body       string
	CreatedAt  time.Time
	Mentions   []string
	VisibleTo  []string
}

// Restricted reports whether the message carries a narrowed visibility set.
func (m Message) Restricted() bool {
	return m.VisibleTo != nil
}

// VisibleBy reports whether a user is allowed to see the message.
func (m Message) VisibleBy(userID string) bool {
	return Visible(m.VisibleTo, userID)
}
