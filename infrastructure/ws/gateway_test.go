package ws

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/auth"
	"chat-relay/contract"
	"chat-relay/mocks"
)

func newGateway(t *testing.T) (*Gateway, *mocks.MockIChatService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockIChatService(ctrl)
	return NewGateway(slog.Default(), svc, []byte("test-secret"), 8), svc
}

func testConn() *contract.Conn {
	return &contract.Conn{ID: uuid.NewString()}
}

func aliceClaims() *auth.CustomClaims {
	return &auth.CustomClaims{UserID: "u-alice", DisplayName: "alice"}
}

func TestDispatch_JoinPrivate(t *testing.T) {
	g, svc := newGateway(t)
	conn := testConn()

	svc.EXPECT().JoinPrivate(gomock.Any(), conn, "u-alice", "u-bob", "alice")

	frame := []byte(`{"event":"join-private","data":{"senderId":"u-alice","receiverId":"u-bob","displayName":"alice"}}`)
	g.dispatch(context.Background(), conn, aliceClaims(), frame)
}

func TestDispatch_JoinPrivate_IdentityMismatchDropped(t *testing.T) {
	g, _ := newGateway(t)

	// Claimed identity differs from the token; no service call is expected
	frame := []byte(`{"event":"join-private","data":{"senderId":"u-mallory","receiverId":"u-bob","displayName":"mallory"}}`)
	g.dispatch(context.Background(), testConn(), aliceClaims(), frame)
}

func TestDispatch_SendPrivate_SenderComesFromToken(t *testing.T) {
	g, svc := newGateway(t)

	// The payload carries no sender field; the token decides
	svc.EXPECT().SendPrivate("u-alice", "u-bob", "hello")

	frame := []byte(`{"event":"send-private","data":{"receiverId":"u-bob","message":"hello"}}`)
	g.dispatch(context.Background(), testConn(), aliceClaims(), frame)
}

func TestDispatch_SendGroup(t *testing.T) {
	g, svc := newGateway(t)

	svc.EXPECT().SendGroup("u-alice", "g1", "@bob hi")

	frame := []byte(`{"event":"send-group","data":{"groupId":"g1","message":"@bob hi"}}`)
	g.dispatch(context.Background(), testConn(), aliceClaims(), frame)
}

func TestDispatch_JoinGroup(t *testing.T) {
	g, svc := newGateway(t)
	conn := testConn()

	svc.EXPECT().JoinGroup(gomock.Any(), conn, "u-alice", "g1", "alice")

	frame := []byte(`{"event":"join-group","data":{"userId":"u-alice","groupId":"g1","displayName":"alice"}}`)
	g.dispatch(context.Background(), conn, aliceClaims(), frame)
}

func TestDispatch_LeaveEvents(t *testing.T) {
	g, svc := newGateway(t)
	conn := testConn()

	svc.EXPECT().LeavePrivate(conn.ID)
	svc.EXPECT().LeaveGroup(conn.ID, "g1")

	g.dispatch(context.Background(), conn, aliceClaims(), []byte(`{"event":"leave-private"}`))
	g.dispatch(context.Background(), conn, aliceClaims(), []byte(`{"event":"leave-group","data":{"groupId":"g1"}}`))
}

func TestDispatch_HistoryRequests(t *testing.T) {
	g, svc := newGateway(t)
	conn := testConn()

	svc.EXPECT().HistoryPrivate(gomock.Any(), conn, "u-alice", "u-bob").Return(nil)
	svc.EXPECT().HistoryGroup(gomock.Any(), conn, "u-alice", "g1").Return(nil)

	g.dispatch(context.Background(), conn, aliceClaims(), []byte(`{"event":"request-history-private","data":{"receiverId":"u-bob"}}`))
	g.dispatch(context.Background(), conn, aliceClaims(), []byte(`{"event":"request-history-group","data":{"groupId":"g1"}}`))
}

func TestDispatch_MalformedFramesDropped(t *testing.T) {
	g, _ := newGateway(t)
	conn := testConn()
	claims := aliceClaims()

	// None of these reach the service
	g.dispatch(context.Background(), conn, claims, []byte(`not json`))
	g.dispatch(context.Background(), conn, claims, []byte(`{}`))
	g.dispatch(context.Background(), conn, claims, []byte(`{"event":"send-private","data":{"message":"no receiver"}}`))
	g.dispatch(context.Background(), conn, claims, []byte(`{"event":"send-group","data":"not an object"}`))
	g.dispatch(context.Background(), conn, claims, []byte(`{"event":"no-such-event","data":{}}`))
}

func TestServeWS_RejectsBadToken(t *testing.T) {
	req := require.New(t)
	g, _ := newGateway(t)

	r := httptest.NewRequest(http.MethodGet, "/ws?token=garbage", nil)
	w := httptest.NewRecorder()
	g.Handler().ServeHTTP(w, r)

	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestServeWS_RejectsMissingToken(t *testing.T) {
	req := require.New(t)
	g, _ := newGateway(t)

	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	w := httptest.NewRecorder()
	g.Handler().ServeHTTP(w, r)

	req.Equal(http.StatusUnauthorized, w.Code)
}
