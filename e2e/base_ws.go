package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"nhooyr.io/websocket"

	"chat-relay/auth"
)

// BaseWsSuite dials real websocket connections against a running instance.
// The suite is skipped unless SERVER_ADDR is set.
type BaseWsSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseWsSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping end-to-end suite")
	}
}

// Step prints a colorized header for one scenario step in logs
func (s *BaseWsSuite) Step(name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WsClient is one authenticated connection of the scenario.
type WsClient struct {
	UserID string
	conn   *websocket.Conn
	t      *testing.T
	debug  bool
}

// DialAs opens an authenticated connection for the given user. Tokens are
// signed locally with the shared secret, the way the auth collaborator would.
func (s *BaseWsSuite) DialAs(userID, displayName string) *WsClient {
	token, err := auth.GenerateToken([]byte(s.Config.TokenSecret), userID, displayName, time.Hour)
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := fmt.Sprintf("ws://%s/ws?token=%s", s.Config.ServerAddr, token)
	conn, _, err := websocket.Dial(ctx, url, nil)
	s.Require().NoError(err, "Failed to dial "+url)

	client := &WsClient{UserID: userID, conn: conn, t: s.T(), debug: s.Config.DebugJSON}
	s.T().Cleanup(client.Close)
	return client
}

func (c *WsClient) Close() {
	_ = c.conn.Close(websocket.StatusNormalClosure, "scenario done")
}

// Emit sends one event frame.
func (c *WsClient) Emit(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := json.Marshal(frame{Event: event, Data: data})
	if err != nil {
		return err
	}
	if c.debug {
		c.t.Logf("[%s] >> %s", c.UserID, body)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, body)
}

// Expect reads frames until one matches the wanted event name or the timeout
// elapses. Frames of other event types are logged and skipped.
func (c *WsClient) Expect(event string, timeout time.Duration) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for {
		_, body, err := c.conn.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("waiting for %q: %w", event, err)
		}
		if c.debug {
			c.t.Logf("[%s] << %s", c.UserID, body)
		}
		var f frame
		if err = json.Unmarshal(body, &f); err != nil {
			return nil, err
		}
		if f.Event == event {
			return f.Data, nil
		}
		c.t.Logf("[%s] skipping %q while waiting for %q", c.UserID, f.Event, event)
	}
}

// ExpectNone asserts that no frame of the given event type arrives within the
// window. Other event types are tolerated.
func (c *WsClient) ExpectNone(event string, window time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), window)
	defer cancel()

	for {
		_, body, err := c.conn.Read(ctx)
		if err != nil {
			// The deadline expiring is the expected outcome
			return nil
		}
		var f frame
		if err = json.Unmarshal(body, &f); err != nil {
			return err
		}
		if f.Event == event {
			return fmt.Errorf("unexpected %q frame: %s", event, f.Data)
		}
	}
}
