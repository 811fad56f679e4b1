//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/moderation"
	"chat-relay/observability"
	"chat-relay/repositories"
)

// IChatService is the facade the transport talks to. It ties the connection
// registry, room manager, mention resolution, visibility computation,
// delivery dispatch, and history replay together.
type IChatService interface {
	Connect(c *contract.Conn)
	Disconnect(handleID string)
	JoinPrivate(ctx context.Context, c *contract.Conn, selfID, peerID, displayName string)
	JoinGroup(ctx context.Context, c *contract.Conn, selfID, groupID, displayName string)
	LeaveGroup(handleID, groupID string)
	LeavePrivate(handleID string)
	SendPrivate(senderID, peerID, body string)
	SendGroup(senderID, groupID, body string)
	HistoryPrivate(ctx context.Context, c *contract.Conn, selfID, peerID string) error
	HistoryGroup(ctx context.Context, c *contract.Conn, selfID, groupID string) error
}

type ChatService struct {
	log        *slog.Logger
	registry   contract.IConnectionRegistry
	rooms      contract.IRoomManager
	dispatcher contract.IDispatcher
	messages   repositories.IMessageRepository
	groups     repositories.IGroupRepository
	users      repositories.IUserDirectory
	moderator  *moderation.Moderator
	metrics    *observability.DeliveryMetrics
}

func NewChatService(log *slog.Logger, registry contract.IConnectionRegistry,
	rooms contract.IRoomManager, dispatcher contract.IDispatcher,
	messages repositories.IMessageRepository, groups repositories.IGroupRepository,
	users repositories.IUserDirectory, moderator *moderation.Moderator,
	metrics *observability.DeliveryMetrics) *ChatService {
	return &ChatService{
		log:        log,
		registry:   registry,
		rooms:      rooms,
		dispatcher: dispatcher,
		messages:   messages,
		groups:     groups,
		users:      users,
		moderator:  moderator,
		metrics:    metrics,
	}
}

// Connect registers a freshly accepted connection. The owning user stays
// unassigned until the first join event.
func (s *ChatService) Connect(c *contract.Conn) {
	s.registry.Register(c)
}

// Disconnect tears a handle down: out of every subscribed room first, then
// out of the registry. Idempotent, so repeated disconnect signals are safe.
func (s *ChatService) Disconnect(handleID string) {
	s.rooms.OnUnregister(handleID)
	s.registry.Unregister(handleID)
}

// JoinPrivate subscribes the connection to the pairwise room shared with peerID.
func (s *ChatService) JoinPrivate(_ context.Context, c *contract.Conn, selfID, peerID, displayName string) {
	s.registry.AssignOwner(c.ID, selfID)
	s.rememberUser(selfID, displayName)
	roomID := domain.PrivateRoom(selfID, peerID)
	s.rooms.Join(c, roomID)
	s.log.Debug("Joined private room", "user", selfID, "room", roomID)
}

// JoinGroup subscribes the connection to the group room and notifies the
// other current subscribers. The joiner itself is not notified.
func (s *ChatService) JoinGroup(ctx context.Context, c *contract.Conn, selfID, groupID, displayName string) {
	s.registry.AssignOwner(c.ID, selfID)
	s.rememberUser(selfID, displayName)
	if err := s.groups.AddMember(groupID, domain.Member{ID: selfID, DisplayName: displayName}); err != nil {
		s.log.Warn("Roster update failed", "group", groupID, "error", err)
	}
	roomID := domain.GroupRoom(groupID)
	s.rooms.Join(c, roomID)

	joined := event.MemberJoinedGroup{GroupID: groupID, UserID: selfID, DisplayName: displayName}
	for _, other := range s.rooms.SubscribersOf(roomID) {
		if other.ID == c.ID {
			continue
		}
		if err := other.Sink.Consume(ctx, joined); err != nil {
			s.log.Debug("Presence push failed", "handle", other.ID, "error", err)
		}
	}
	s.log.Debug("Joined group room", "user", selfID, "room", roomID)
}

func (s *ChatService) LeaveGroup(handleID, groupID string) {
	s.rooms.Leave(handleID, domain.GroupRoom(groupID))
}

// LeavePrivate unsubscribes the handle from every private room it is in.
// Group memberships are untouched; those are left explicitly.
func (s *ChatService) LeavePrivate(handleID string) {
	for _, roomID := range s.rooms.RoomsOf(handleID) {
		if !roomID.IsGroup() {
			s.rooms.Leave(handleID, roomID)
		}
	}
}

// SendPrivate routes a pairwise message. Private messages carry no mentions,
// so visibility is always room-wide.
func (s *ChatService) SendPrivate(senderID, peerID, body string) {
	message := domain.Message{
		ID:         uuid.New(),
		Kind:       domain.KindPrivate,
		SenderID:   senderID,
		SenderName: s.displayName(senderID),
		TargetID:   peerID,
		Body:       s.censor(body),
		CreatedAt:  time.Now().UTC(),
	}
	s.dispatcher.Dispatch(domain.PrivateRoom(senderID, peerID), message)
}

// SendGroup routes a group message. Mentions are extracted from the raw body,
// resolved against the group roster, and turned into a visibility set. An
// unknown group or a roster failure degrades to no mentions: the sender is
// never blocked by a metadata inconsistency.
func (s *ChatService) SendGroup(senderID, groupID, body string) {
	var resolved []string
	if rawNames := domain.ExtractMentions(body); len(rawNames) > 0 {
		roster, err := s.groups.MembersOf(groupID)
		if err != nil {
			s.log.Warn("Roster lookup failed, delivering room-wide", "group", groupID, "error", err)
			roster = nil
		}
		resolved = domain.ResolveMentions(rawNames, roster)
	}

	message := domain.Message{
		ID:         uuid.New(),
		Kind:       domain.KindGroup,
		SenderID:   senderID,
		SenderName: s.displayName(senderID),
		TargetID:   groupID,
		Body:       s.censor(body),
		CreatedAt:  time.Now().UTC(),
		Mentions:   resolved,
		VisibleTo:  domain.ComputeVisibility(senderID, resolved),
	}
	s.dispatcher.Dispatch(domain.GroupRoom(groupID), message)
}

// HistoryPrivate replays the pairwise conversation to the requesting
// connection only, oldest first.
func (s *ChatService) HistoryPrivate(ctx context.Context, c *contract.Conn, selfID, peerID string) error {
	payloads, err := s.replay(domain.PrivateRoom(selfID, peerID), selfID)
	if err != nil {
		return err
	}
	return c.Sink.Consume(ctx, event.HistoryPrivate{PeerID: peerID, Messages: payloads})
}

// HistoryGroup replays the group conversation to the requesting connection
// only, re-filtered by the requester's visibility: a restricted mention
// message stays invisible to non-mentioned members even at read time.
func (s *ChatService) HistoryGroup(ctx context.Context, c *contract.Conn, selfID, groupID string) error {
	payloads, err := s.replay(domain.GroupRoom(groupID), selfID)
	if err != nil {
		return err
	}
	return c.Sink.Consume(ctx, event.HistoryGroup{GroupID: groupID, Messages: payloads})
}

// replay fetches raw room history and applies the visibility rule for the
// requesting user. This is the single filtering layer; the store never filters.
func (s *ChatService) replay(roomID domain.RoomID, requesterID string) ([]event.MessagePayload, error) {
	history, err := s.messages.RoomHistory(roomID)
	if err != nil {
		return nil, err
	}

	visible := lo.Filter(history, func(m repositories.DiskMessage, _ int) bool {
		return domain.Visible(m.VisibleTo, requesterID)
	})
	s.metrics.Replayed.Add(uint64(len(visible)))

	return lo.Map(visible, func(m repositories.DiskMessage, _ int) event.MessagePayload {
		return diskPayload(m)
	}), nil
}

func diskPayload(m repositories.DiskMessage) event.MessagePayload {
	payload := event.MessagePayload{
		MessageID:  m.ID.String(),
		SenderID:   m.Sender,
		Body:       m.Body,
		Timestamp:  m.At,
		Mentions:   m.Mentions,
		Restricted: m.VisibleTo != nil,
	}
	if m.Kind == string(domain.KindGroup) {
		payload.GroupID = domain.RoomID(m.Room).GroupID()
	}
	return payload
}

func (s *ChatService) censor(body string) string {
	if s.moderator == nil {
		return body
	}
	return s.moderator.Censor(body)
}

func (s *ChatService) displayName(userID string) string {
	name, _, err := s.users.DisplayNameOf(userID)
	if err != nil {
		s.log.Debug("Directory lookup failed", "user", userID, "error", err)
	}
	return name
}

func (s *ChatService) rememberUser(userID, displayName string) {
	if displayName == "" {
		return
	}
	if err := s.users.UpsertUser(repositories.User{ID: userID, DisplayName: displayName}); err != nil {
		s.log.Debug("Directory upsert failed", "user", userID, "error", err)
	}
}
