//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"chat-relay/domain"
)

type IMessageRepository interface {
	StoreMessage(message DiskMessage) error
	RoomHistory(roomID domain.RoomID) ([]DiskMessage, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

// DiskMessage is the persisted form of a message. VisibleTo nil encodes
// room-wide visibility; a non-nil set restricts replay to the listed users.
type DiskMessage struct {
	ID        uuid.UUID `json:"id"`
	Room      string    `json:"room"`
	Kind      string    `json:"kind"`
	Sender    string    `json:"sender"`
	Body      string    `json:"body"`
	At        time.Time `json:"at"`
	Mentions  []string  `json:"mentions,omitempty"`
	VisibleTo []string  `json:"visible_to,omitempty"`
}

// FromDomain converts an in-flight message into its persisted form.
func FromDomain(m domain.Message, roomID domain.RoomID) DiskMessage {
	return DiskMessage{
		ID:        m.ID,
		Room:      string(roomID),
		Kind:      string(m.Kind),
		Sender:    m.SenderID,
		Body:      m.Body,
		At:        m.CreatedAt,
		Mentions:  m.Mentions,
		VisibleTo: m.VisibleTo,
	}
}

// StoreMessage persists a message in BadgerDB.
// The key is formatted as "msg:{room_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two messages
//     arrive at the same nanosecond.
func (m MessageRepository) StoreMessage(message DiskMessage) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		message.Room,
		message.At.UnixNano(),
		message.ID,
	)
	bytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// RoomHistory retrieves the persisted messages of a room, oldest first.
// Thanks to the padded timestamp in the key, a forward prefix scan is already
// in chronological order. Collection stops at the configured limit.
// Visibility filtering is deliberately NOT done here: the history service is
// the one layer applying the visibility rule.
func (m MessageRepository) RoomHistory(roomID domain.RoomID) ([]DiskMessage, error) {
	var raw [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("msg:%s:", roomID))
		options := badger.DefaultIteratorOptions
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(raw) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				break
			}
			err := it.Item().Value(func(value []byte) error {
				raw = append(raw, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	messages := make([]DiskMessage, 0, len(raw))
	for _, b := range raw {
		var message DiskMessage
		if err = json.Unmarshal(b, &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}
