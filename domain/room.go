package domain

import "strings"

// RoomID identifies a logical broadcast group.
// Private rooms are derived from the sorted participant pair, group rooms
// from the group id under a namespace prefix, so the two spaces cannot collide.
type RoomID string

const (
	pairSeparator = "_"
	groupPrefix   = "group_"
)

// PrivateRoom computes the room id shared by two users.
// The pair is sorted so both peers address the same room without coordination.
func PrivateRoom(a, b string) RoomID {
	if a > b {
		a, b = b, a
	}
	return RoomID(a + pairSeparator + b)
}

// GroupRoom computes the room id of a group conversation.
func GroupRoom(groupID string) RoomID {
	return RoomID(groupPrefix + groupID)
}

// IsGroup reports whether the room belongs to the group namespace.
func (r RoomID) IsGroup() bool {
	return strings.HasPrefix(string(r), groupPrefix)
}

// GroupID strips the namespace prefix back to the plain group id.
// Empty for private rooms.
func (r RoomID) GroupID() string {
	if !r.IsGroup() {
		return ""
	}
	return strings.TrimPrefix(string(r), groupPrefix)
}
