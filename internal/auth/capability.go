package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

// CapabilityKind is the access rule a route declares.
type CapabilityKind int

const (
	CapAnyAuthenticated CapabilityKind = iota
	CapAdminOnly
	CapSelfOrAdmin
)

func (k CapabilityKind) String() string {
	switch k {
	case CapAnyAuthenticated:
		return "any_authenticated"
	case CapAdminOnly:
		return "admin_only"
	case CapSelfOrAdmin:
		return "self_or_admin"
	default:
		return "unknown"
	}
}

// OwnerFunc resolves the owner of the resource addressed by the request.
type OwnerFunc func(c echo.Context) (uuid.UUID, error)

// Capability is a route's access rule plus, for SelfOrAdmin, how to find the owner.
type Capability struct {
	Kind  CapabilityKind
	Owner OwnerFunc
}

// AnyAuthenticated admits every authenticated principal.
func AnyAuthenticated() Capability {
	return Capability{Kind: CapAnyAuthenticated}
}

// AdminOnly admits principals with the admin role.
func AdminOnly() Capability {
	return Capability{Kind: CapAdminOnly}
}

// SelfOrAdmin admits admins and the owner of the resource.
func SelfOrAdmin(owner OwnerFunc) Capability {
	return Capability{Kind: CapSelfOrAdmin, Owner: owner}
}

// Check decides whether principal holds kind on a resource owned by ownerID.
// ownerID is ignored for kinds other than CapSelfOrAdmin.
func Check(kind CapabilityKind, principal *model.User, ownerID uuid.UUID) error {
	if principal == nil {
		return apperrors.Unauthorized("unauthorized")
	}
	switch kind {
	case CapAnyAuthenticated:
		return nil
	case CapAdminOnly:
		if principal.IsAdmin() {
			return nil
		}
	case CapSelfOrAdmin:
		if principal.IsAdmin() || principal.ID == ownerID {
			return nil
		}
	}
	return apperrors.Forbidden("forbidden")
}

// ParamOwner treats the path parameter name as the owning principal id.
func ParamOwner(name string) OwnerFunc {
	return func(c echo.Context) (uuid.UUID, error) {
		id, err := uuid.Parse(c.Param(name))
		if err != nil {
			return uuid.Nil, invalidParam(name)
		}
		return id, nil
	}
}

// LoadedOwner loads the resource addressed by path parameter name and returns its owner.
func LoadedOwner(name string, lookup func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)) OwnerFunc {
	return func(c echo.Context) (uuid.UUID, error) {
		id, err := uuid.Parse(c.Param(name))
		if err != nil {
			return uuid.Nil, invalidParam(name)
		}
		return lookup(c.Request().Context(), id)
	}
}

func invalidParam(name string) error {
	return apperrors.Validation("Validation Error", apperrors.FieldError{
		Field:    name,
		Location: apperrors.LocationPath,
		Messages: []string{"must be a valid UUID"},
	})
}
