package ws_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/in/ws"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	token    string
	identity user.Identity
}

func (s stubVerifier) Verify(token string) (user.Identity, error) {
	if token == "" || token != s.token {
		return user.Identity{}, errs.NewUnauthenticatedError("invalid token")
	}
	return s.identity, nil
}

func newEndpointServer(t *testing.T, hub *ws.Hub) string {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		status := http.StatusInternalServerError
		if errors.Is(err, errs.ErrUnauthenticated) {
			status = http.StatusUnauthorized
		}
		_ = c.NoContent(status)
	}
	verifier := stubVerifier{token: "good", identity: user.NewIdentity(kernel.NewUUID(), user.RoleOwner)}
	e.GET("/ws/orders", ws.NewEndpoint(hub, verifier).Handle)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/orders"
}

func TestEndpoint_RejectsMissingAndBadTokens(t *testing.T) {
	hub := ws.NewHub(4, discardLogger())
	url := newEndpointServer(t, hub)

	for _, target := range []string{url, url + "?token=bad"} {
		_, resp, err := websocket.DefaultDialer.Dial(target, nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	}

	header := http.Header{}
	header.Set("Authorization", "Basic Z29vZA==")
	_, resp, err := websocket.DefaultDialer.Dial(url+"?token=good", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	assert.Equal(t, 0, hub.Len())
}

func TestEndpoint_StreamsDeliveredMessages(t *testing.T) {
	hub := ws.NewHub(4, discardLogger())
	url := newEndpointServer(t, hub)

	header := http.Header{}
	header.Set("Authorization", "Bearer good")
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	hub.Deliver([]byte(`{"event":"order_created"}`))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, kind)
	assert.JSONEq(t, `{"event":"order_created"}`, string(msg))
}

func TestEndpoint_ClientCloseDisconnects(t *testing.T) {
	hub := ws.NewHub(4, discardLogger())
	url := newEndpointServer(t, hub)

	conn, resp, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestEndpoint_HubCloseEndsStream(t *testing.T) {
	hub := ws.NewHub(4, discardLogger())
	url := newEndpointServer(t, hub)

	conn, resp, err := websocket.DefaultDialer.Dial(url+"?token=good", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}
