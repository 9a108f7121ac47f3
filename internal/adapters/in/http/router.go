package http

import (
	"log/slog"

	"dispatch/internal/core/ports"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// WebSocketPath is where order events are streamed.
const WebSocketPath = "/ws/orders"

// NewRouter assembles the echo instance: error rendering, request logging,
// authentication, request validation against doc, the REST handlers, the
// swagger UI and the event stream.
func NewRouter(
	server ServerInterface,
	verifier ports.CredentialVerifier,
	stream echo.HandlerFunc,
	doc *openapi3.T,
	logger *slog.Logger,
) (*echo.Echo, error) {
	validate, err := ValidateRequests(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil {
				level = slog.LevelWarn
			}
			logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(Authenticate(verifier, PublicPaths("/health", "/signup", "/login", WebSocketPath)))
	e.Use(validate)

	RegisterHandlers(e, server)
	RegisterDocs(e, doc)
	if stream != nil {
		e.GET(WebSocketPath, stream)
	}
	return e, nil
}
