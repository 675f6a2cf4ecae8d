package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/logging"
	"storefront/internal/model"
)

// PrincipalContextKey is the echo context key holding the authenticated *model.User.
const PrincipalContextKey = "principal"

type principalCtxKey struct{}

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal *model.User) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, principal)
}

// PrincipalFrom returns the principal attached by Gate.Authenticate.
func PrincipalFrom(ctx context.Context) (*model.User, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(*model.User)
	return p, ok && p != nil
}

// PrincipalLookup finds a principal by id.
type PrincipalLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Gate authenticates requests and enforces route capabilities.
type Gate struct {
	tokens *JWTService
	users  PrincipalLookup
	log    logging.Logger
}

// NewGate creates a new gate.
func NewGate(tokens *JWTService, users PrincipalLookup, log logging.Logger) *Gate {
	return &Gate{tokens: tokens, users: users, log: log}
}

// Authenticate requires a valid bearer access token whose subject is a live principal.
func (g *Gate) Authenticate() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ContextKey:  PrincipalContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return g.resolve(c.Request().Context(), token)
		},
		SuccessHandler: func(c echo.Context) {
			principal, _ := c.Get(PrincipalContextKey).(*model.User)
			req := c.Request()
			c.SetRequest(req.WithContext(WithPrincipal(req.Context(), principal)))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var appErr *apperrors.Error
			if errors.As(err, &appErr) {
				return appErr
			}
			return apperrors.Unauthorized("unauthorized")
		},
	})
}

func (g *Gate) resolve(ctx context.Context, token string) (*model.User, error) {
	claims, err := g.tokens.ParseAccessToken(token)
	if err != nil {
		return nil, apperrors.Unauthorized("unauthorized")
	}
	id, err := claims.PrincipalID()
	if err != nil {
		return nil, apperrors.Unauthorized("unauthorized")
	}

	principal, err := g.users.FindByID(ctx, id)
	if err != nil || principal == nil {
		g.log.Debug(ctx, "token subject not resolvable", "subject", claims.Subject, "error", err)
		return nil, apperrors.Unauthorized("unauthorized")
	}
	return principal, nil
}

// Require enforces capability on routes that already passed Authenticate.
func (g *Gate) Require(capability Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c.Request().Context())
			if !ok {
				return apperrors.Unauthorized("unauthorized")
			}

			var owner uuid.UUID
			if capability.Kind == CapSelfOrAdmin && !principal.IsAdmin() {
				if capability.Owner == nil {
					return apperrors.Forbidden("forbidden")
				}
				id, err := capability.Owner(c)
				if err != nil {
					return err
				}
				owner = id
			}

			if err := Check(capability.Kind, principal, owner); err != nil {
				g.log.Info(c.Request().Context(), "access denied",
					"principal", principal.ID, "capability", capability.Kind.String(), "path", c.Path())
				return err
			}
			return next(c)
		}
	}
}
