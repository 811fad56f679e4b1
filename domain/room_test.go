package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrivateRoom_SortedPairDeterminism(t *testing.T) {
	req := require.New(t)

	// Both peers must compute the identical room id regardless of who initiates
	req.Equal(PrivateRoom("alice", "bob"), PrivateRoom("bob", "alice"))
	req.Equal(RoomID("alice_bob"), PrivateRoom("bob", "alice"))
}

func TestPrivateRoom_SamePeer(t *testing.T) {
	req := require.New(t)
	req.Equal(RoomID("alice_alice"), PrivateRoom("alice", "alice"))
}

func TestGroupRoom_Namespace(t *testing.T) {
	req := require.New(t)

	room := GroupRoom("42")

	req.Equal(RoomID("group_42"), room)
	req.True(room.IsGroup())
	req.Equal("42", room.GroupID())
}

func TestGroupRoom_NoCollisionWithPrivate(t *testing.T) {
	req := require.New(t)

	// A user literally named "group" must not collide with the group namespace
	private := PrivateRoom("group", "42")

	req.NotEqual(GroupRoom("42"), private)
	req.Equal(RoomID("42_group"), private)
	req.False(private.IsGroup())
	req.Empty(private.GroupID())
}
