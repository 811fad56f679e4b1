//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_directory.go -package=mocks
package repositories

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// IUserDirectory labels delivered messages with the sender's display name.
// An unknown user is not an error; the message goes out unlabeled.
type IUserDirectory interface {
	UpsertUser(user User) error
	DisplayNameOf(userID string) (string, bool, error)
}

type UserDirectory struct {
	db *badger.DB
}

func NewUserDirectory(db *badger.DB) IUserDirectory {
	return &UserDirectory{db: db}
}

// User is the persisted form of a directory entry.
type User struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *UserDirectory) UpsertUser(user User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return u.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("user:"+user.ID), data)
	})
}

// DisplayNameOf returns the display name of a user, reporting absence
// separately from storage failure.
func (u *UserDirectory) DisplayNameOf(userID string) (string, bool, error) {
	var user User
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("user:" + userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &user)
		})
	})
	if err == badger.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return user.DisplayName, true, nil
}
