// Package ws is the websocket transport of the routing engine. It upgrades
// connections, establishes identity from the session token, decodes inbound
// events, and drains each connection's sink onto the wire.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"chat-relay/auth"
	"chat-relay/contract"
	"chat-relay/domain/event"
	"chat-relay/errors"
	"chat-relay/services"
	"chat-relay/sink"
)

const pingInterval = 20 * time.Second

type Gateway struct {
	log         *slog.Logger
	chatService services.IChatService
	secret      []byte
	bufferSize  int
	validate    *validator.Validate
}

func NewGateway(log *slog.Logger, chatService services.IChatService,
	secret []byte, bufferSize int) *Gateway {
	return &Gateway{
		log:         log,
		chatService: chatService,
		secret:      secret,
		bufferSize:  bufferSize,
		validate:    validator.New(),
	}
}

func (g *Gateway) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", g.serveWS)
	return mux
}

// serveWS owns one connection task: accept, register, read until the
// transport drops, tear down. Transport errors never flow through message
// handling; they end the read loop and take the disconnect path.
func (g *Gateway) serveWS(w http.ResponseWriter, r *http.Request) {
	claims, err := auth.ValidateToken(g.secret, r.URL.Query().Get("token"))
	if err != nil {
		g.log.Debug("Refusing upgrade, bad token", "error", err)
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		g.log.Error("Websocket accept failed", "error", err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "connection teardown")

	connSink := sink.NewConnectionSink(g.log, g.bufferSize)
	conn := &contract.Conn{ID: uuid.NewString(), Sink: connSink}
	g.chatService.Connect(conn)
	defer g.chatService.Disconnect(conn.ID)

	ctx := r.Context()
	go g.writeLoop(ctx, c, connSink)

	g.log.Info("Connection established", "handle", conn.ID, "user", claims.UserID)
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			g.log.Info("Connection closed", "handle", conn.ID, "error", err)
			return
		}
		g.dispatch(ctx, conn, claims, data)
	}
}

// writeLoop serializes sink events onto the wire and keeps the connection
// alive with periodic pings. Exits when the connection context is canceled.
func (g *Gateway) writeLoop(ctx context.Context, c *websocket.Conn, connSink *sink.ConnectionSink) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case evt := <-connSink.Events():
			frame, err := json.Marshal(outbound{Event: evt.EventName(), Data: evt})
			if err != nil {
				g.log.Error("Outbound marshal failed", "event", evt.EventName(), "error", err)
				continue
			}
			if err = c.Write(ctx, websocket.MessageText, frame); err != nil {
				g.log.Debug("Outbound write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.Ping(ctx)
		case <-ctx.Done():
			return
		}
	}
}

type outbound struct {
	Event string            `json:"event"`
	Data  event.DomainEvent `json:"data"`
}

// dispatch decodes and routes one inbound frame. A malformed frame is dropped
// with a diagnostic and no response: until identity and shape are established
// there is no reliable channel to address.
func (g *Gateway) dispatch(ctx context.Context, conn *contract.Conn, claims *auth.CustomClaims, data []byte) {
	var envelope Envelope
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.Event == "" {
		g.log.Debug("Dropping frame", "handle", conn.ID, "error", errors.ErrMalformedRequest)
		return
	}

	var err error
	switch envelope.Event {
	case EventJoinPrivate:
		var req JoinPrivateRequest
		if err = g.decode(envelope.Data, &req); err == nil {
			if req.SelfID != claims.UserID {
				err = errors.ErrIdentityMismatch
				break
			}
			g.chatService.JoinPrivate(ctx, conn, req.SelfID, req.PeerID, req.DisplayName)
		}
	case EventJoinGroup:
		var req JoinGroupRequest
		if err = g.decode(envelope.Data, &req); err == nil {
			if req.SelfID != claims.UserID {
				err = errors.ErrIdentityMismatch
				break
			}
			g.chatService.JoinGroup(ctx, conn, req.SelfID, req.GroupID, req.DisplayName)
		}
	case EventLeavePrivate:
		g.chatService.LeavePrivate(conn.ID)
	case EventLeaveGroup:
		var req LeaveGroupRequest
		if err = g.decode(envelope.Data, &req); err == nil {
			g.chatService.LeaveGroup(conn.ID, req.GroupID)
		}
	case EventRequestHistoryPrivate:
		var req HistoryPrivateRequest
		if err = g.decode(envelope.Data, &req); err == nil {
			err = g.chatService.HistoryPrivate(ctx, conn, claims.UserID, req.PeerID)
		}
	case EventRequestHistoryGroup:
		var req HistoryGroupRequest
		if err = g.decode(envelope.Data, &req); err == nil {
			err = g.chatService.HistoryGroup(ctx, conn, claims.UserID, req.GroupID)
		}
	case EventSendPrivate:
		var req SendPrivateRequest
		if err = g.decode(envelope.Data, &req); err == nil {
			g.chatService.SendPrivate(claims.UserID, req.PeerID, req.Body)
		}
	case EventSendGroup:
		var req SendGroupRequest
		if err = g.decode(envelope.Data, &req); err == nil {
			g.chatService.SendGroup(claims.UserID, req.GroupID, req.Body)
		}
	default:
		err = errors.ErrUnknownEvent
	}

	if err != nil {
		g.log.Debug("Dropping event", "handle", conn.ID, "event", envelope.Event, "error", err)
	}
}

// decode unmarshals a payload and enforces its required fields.
func (g *Gateway) decode(data []byte, payload any) error {
	if err := json.Unmarshal(data, payload); err != nil {
		return errors.ErrMalformedRequest
	}
	if err := g.validate.Struct(payload); err != nil {
		return errors.ErrMalformedRequest
	}
	return nil
}
