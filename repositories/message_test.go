package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"chat-relay/domain"
)

// SetupTestDB initializes a temporary Badger instance for testing
func SetupTestDB(t *testing.T) (*badger.DB, func()) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)

	return db, func() {
		db.Close()
	}
}

func diskMessage(room string, at time.Time, body string, visibleTo []string) DiskMessage {
	return DiskMessage{
		ID:        uuid.New(),
		Room:      room,
		Kind:      string(domain.KindGroup),
		Sender:    "u-alice",
		Body:      body,
		At:        at,
		VisibleTo: visibleTo,
	}
}

func TestMessageRepository_HistoryIsChronological(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default(), nil)
	base := time.Now().UTC()

	// Stored out of order on purpose
	req.NoError(repo.StoreMessage(diskMessage("group_g1", base.Add(2*time.Second), "third", nil)))
	req.NoError(repo.StoreMessage(diskMessage("group_g1", base, "first", nil)))
	req.NoError(repo.StoreMessage(diskMessage("group_g1", base.Add(time.Second), "second", nil)))

	history, err := repo.RoomHistory(domain.RoomID("group_g1"))
	req.NoError(err)
	req.Len(history, 3)
	req.Equal("first", history[0].Body)
	req.Equal("second", history[1].Body)
	req.Equal("third", history[2].Body)
}

func TestMessageRepository_HistoryScopedToRoom(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default(), nil)
	now := time.Now().UTC()

	req.NoError(repo.StoreMessage(diskMessage("group_g1", now, "in g1", nil)))
	req.NoError(repo.StoreMessage(diskMessage("group_g2", now, "in g2", nil)))
	req.NoError(repo.StoreMessage(diskMessage("u-alice_u-bob", now, "pairwise", nil)))

	history, err := repo.RoomHistory(domain.RoomID("group_g1"))
	req.NoError(err)
	req.Len(history, 1)
	req.Equal("in g1", history[0].Body)
}

func TestMessageRepository_HistoryKeepsVisibilitySet(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default(), nil)
	now := time.Now().UTC()

	// The store keeps restricted messages as-is; filtering happens above it
	req.NoError(repo.StoreMessage(diskMessage("group_g1", now, "open", nil)))
	req.NoError(repo.StoreMessage(diskMessage("group_g1", now.Add(time.Second), "restricted", []string{"u-alice", "u-bob"})))

	history, err := repo.RoomHistory(domain.RoomID("group_g1"))
	req.NoError(err)
	req.Len(history, 2)
	req.Nil(history[0].VisibleTo)
	req.Equal([]string{"u-alice", "u-bob"}, history[1].VisibleTo)
}

func TestMessageRepository_SameNanosecondKeepsBothMessages(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default(), nil)
	at := time.Now().UTC()

	req.NoError(repo.StoreMessage(diskMessage("group_g1", at, "one", nil)))
	req.NoError(repo.StoreMessage(diskMessage("group_g1", at, "two", nil)))

	history, err := repo.RoomHistory(domain.RoomID("group_g1"))
	req.NoError(err)
	req.Len(history, 2)
}

func TestMessageRepository_LimitCapsReplay(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	limit := 2
	repo := NewMessageRepository(db, slog.Default(), &limit)
	base := time.Now().UTC()

	for i := 0; i < 5; i++ {
		req.NoError(repo.StoreMessage(diskMessage("group_g1", base.Add(time.Duration(i)*time.Second), "msg", nil)))
	}

	history, err := repo.RoomHistory(domain.RoomID("group_g1"))
	req.NoError(err)
	req.Len(history, limit)
}

func TestMessageRepository_EmptyRoom(t *testing.T) {
	req := require.New(t)
	db, cleanup := SetupTestDB(t)
	defer cleanup()

	repo := NewMessageRepository(db, slog.Default(), nil)

	history, err := repo.RoomHistory(domain.RoomID("group_nope"))
	req.NoError(err)
	req.Empty(history)
}
