package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserDirectory_RoundTrip(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	dir := NewUserDirectory(db)
	req.NoError(dir.UpsertUser(User{ID: "u-alice", DisplayName: "alice"}))

	name, found, err := dir.DisplayNameOf("u-alice")
	req.NoError(err)
	req.True(found)
	req.Equal("alice", name)
}

func TestUserDirectory_AbsenceIsNotAnError(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	dir := NewUserDirectory(db)

	name, found, err := dir.DisplayNameOf("nobody")
	req.NoError(err)
	req.False(found)
	req.Empty(name)
}

func TestUserDirectory_UpsertUpdatesDisplayName(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	dir := NewUserDirectory(db)
	req.NoError(dir.UpsertUser(User{ID: "u-alice", DisplayName: "alice"}))
	req.NoError(dir.UpsertUser(User{ID: "u-alice", DisplayName: "Alice L."}))

	name, found, err := dir.DisplayNameOf("u-alice")
	req.NoError(err)
	req.True(found)
	req.Equal("Alice L.", name)
}
