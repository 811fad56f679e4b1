//go:generate go run go.uber.org/mock/mockgen -source=group.go -destination=../mocks/mock_group_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"

	"chat-relay/domain"
)

// IGroupRepository is the group-membership collaborator of the mention
// resolver. MembersOf returns an empty roster for an unknown group: sending
// must degrade to room-wide visibility, never fail on a metadata miss.
type IGroupRepository interface {
	UpsertGroup(group Group) error
	AddMember(groupID string, member domain.Member) error
	MembersOf(groupID string) ([]domain.Member, error)
}

type GroupRepository struct {
	db *badger.DB
}

func NewGroupRepository(db *badger.DB) IGroupRepository {
	return &GroupRepository{db: db}
}

// Group is the persisted form of a group conversation and its roster.
type Group struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Members   []storedMember `json:"members"`
	CreatedAt time.Time      `json:"created_at"`
}

type storedMember struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// NewGroup builds a Group from a domain roster.
func NewGroup(id, name string, members []domain.Member) Group {
	return Group{
		ID:   id,
		Name: name,
		Members: lo.Map(members, func(m domain.Member, _ int) storedMember {
			return storedMember{ID: m.ID, DisplayName: m.DisplayName}
		}),
		CreatedAt: time.Now().UTC(),
	}
}

func (g *GroupRepository) UpsertGroup(group Group) error {
	data, err := json.Marshal(group)
	if err != nil {
		return err
	}
	return g.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("group:"+group.ID), data)
	})
}

// AddMember puts a user on the group roster, creating the group on first
// join. A returning member only refreshes its display name. The read and the
// write share one transaction so concurrent joins cannot lose each other.
func (g *GroupRepository) AddMember(groupID string, member domain.Member) error {
	return g.db.Update(func(txn *badger.Txn) error {
		var group Group
		item, err := txn.Get([]byte("group:" + groupID))
		switch {
		case err == badger.ErrKeyNotFound:
			group = NewGroup(groupID, groupID, nil)
		case err != nil:
			return err
		default:
			if err = item.Value(func(val []byte) error {
				return json.Unmarshal(val, &group)
			}); err != nil {
				return err
			}
		}

		found := false
		for i := range group.Members {
			if group.Members[i].ID == member.ID {
				group.Members[i].DisplayName = member.DisplayName
				found = true
				break
			}
		}
		if !found {
			group.Members = append(group.Members, storedMember{ID: member.ID, DisplayName: member.DisplayName})
		}

		data, err := json.Marshal(group)
		if err != nil {
			return err
		}
		return txn.Set([]byte("group:"+group.ID), data)
	})
}

// MembersOf returns the current roster of a group.
// An absent group yields an empty roster and no error.
func (g *GroupRepository) MembersOf(groupID string) ([]domain.Member, error) {
	var group Group
	err := g.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("group:" + groupID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &group)
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return lo.Map(group.Members, func(m storedMember, _ int) domain.Member {
		return domain.Member{ID: m.ID, DisplayName: m.DisplayName}
	}), nil
}
