package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeVisibility_NoMentionsMeansAll(t *testing.T) {
	req := require.New(t)

	// nil is the sentinel for room-wide visibility; nothing is persisted
	req.Nil(ComputeVisibility("alice", nil))
	req.Nil(ComputeVisibility("alice", []string{}))
}

func TestComputeVisibility_SenderAlwaysIncluded(t *testing.T) {
	req := require.New(t)

	visibility := ComputeVisibility("alice", []string{"bob"})

	req.ElementsMatch([]string{"alice", "bob"}, visibility)
}

func TestComputeVisibility_SelfMentionNotDuplicated(t *testing.T) {
	req := require.New(t)

	visibility := ComputeVisibility("alice", []string{"alice", "bob"})

	req.ElementsMatch([]string{"alice", "bob"}, visibility)
}

func TestVisible(t *testing.T) {
	req := require.New(t)

	// nil set means unrestricted
	req.True(Visible(nil, "anyone"))

	restricted := []string{"alice", "bob"}
	req.True(Visible(restricted, "alice"))
	req.True(Visible(restricted, "bob"))
	req.False(Visible(restricted, "carol"))
}

func TestMessage_VisibleBy(t *testing.T) {
	req := require.New(t)

	broadcast := Message{}
	req.False(broadcast.Restricted())
	req.True(broadcast.VisibleBy("carol"))

	restricted := Message{VisibleTo: []string{"alice", "bob"}}
	req.True(restricted.Restricted())
	req.True(restricted.VisibleBy("bob"))
	req.False(restricted.VisibleBy("carol"))
}
