package ws

import (
	"net/http"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	pingInterval   = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

// Endpoint serves GET /ws/orders. The caller authenticates before the upgrade
// with a bearer token, either in the Authorization header or, for browsers,
// in the token query parameter.
type Endpoint struct {
	hub      *Hub
	verifier ports.CredentialVerifier
	upgrader websocket.Upgrader
}

func NewEndpoint(hub *Hub, verifier ports.CredentialVerifier) *Endpoint {
	return &Endpoint{
		hub:      hub,
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are not checked: the token already binds the connection to a user.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (e *Endpoint) Handle(c echo.Context) error {
	identity, err := e.authenticate(c.Request())
	if err != nil {
		return err
	}

	handle, queue, err := e.hub.Connect()
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "shutting down")
	}

	conn, err := e.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		e.hub.Disconnect(handle)
		// Upgrade has already written the failure response.
		c.Logger().Warnf("websocket upgrade failed: %v", err)
		return nil
	}

	e.hub.logger.Info("subscriber connected",
		"handle", handle, "user_id", identity.UserID.String(), "role", identity.Role.String())

	go e.writePump(conn, queue)
	go e.readPump(conn, handle)
	return nil
}

func (e *Endpoint) authenticate(r *http.Request) (user.Identity, error) {
	token := r.URL.Query().Get("token")
	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, value, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return user.Identity{}, errs.NewUnauthenticatedError("authorization header must be a bearer token")
		}
		token = value
	}
	return e.verifier.Verify(strings.TrimSpace(token))
}

// readPump only consumes control frames. Subscribers have nothing to say;
// the first read error ends the subscription.
func (e *Endpoint) readPump(conn *websocket.Conn, handle Handle) {
	defer func() {
		e.hub.Disconnect(handle)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				e.hub.logger.Debug("subscriber read ended", "handle", handle, "error", err)
			}
			return
		}
	}
}

func (e *Endpoint) writePump(conn *websocket.Conn, queue <-chan []byte) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-queue:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Disconnected or evicted by the hub.
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
