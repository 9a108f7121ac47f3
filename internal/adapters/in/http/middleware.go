package http

import (
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const identityKey = "dispatch.identity"

// Authenticate verifies the bearer token of every request that skipper lets
// through and stores the identity on the context.
func Authenticate(verifier ports.CredentialVerifier, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return errs.NewUnauthenticatedError("missing authorization header")
			}
			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				return errs.NewUnauthenticatedError("authorization header must be a bearer token")
			}

			identity, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				return err
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// PublicPaths skips authentication for the given route templates.
func PublicPaths(paths ...string) middleware.Skipper {
	public := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		public[p] = struct{}{}
	}
	return func(c echo.Context) bool {
		if _, ok := public[c.Path()]; ok {
			return true
		}
		return strings.HasPrefix(c.Path(), "/swagger")
	}
}

// IdentityFrom returns the identity stored by Authenticate, or the zero identity.
func IdentityFrom(c echo.Context) user.Identity {
	identity, _ := c.Get(identityKey).(user.Identity)
	return identity
}

// LoadSpec parses and validates an OpenAPI document.
func LoadSpec(data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// ValidateRequests checks parameters and bodies against doc. Requests for
// paths the document does not describe pass through untouched.
func ValidateRequests(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		// Credentials are checked by Authenticate.
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		MultiError:         true,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				// Unknown paths and methods are answered by echo itself.
				return next(c)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if verr := openapi3filter.ValidateRequest(req.Context(), input); verr != nil {
				return errs.NewValueIsInvalidErrorWithCause("request", verr)
			}
			return next(c)
		}
	}, nil
}
