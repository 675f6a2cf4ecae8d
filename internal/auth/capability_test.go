package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

func TestCheck_Matrix(t *testing.T) {
	owner := &model.User{ID: uuid.New(), Role: model.RoleUser}
	stranger := &model.User{ID: uuid.New(), Role: model.RoleUser}
	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}

	tests := []struct {
		name      string
		kind      CapabilityKind
		principal *model.User
		want      apperrors.Kind
		allowed   bool
	}{
		{"any/user", CapAnyAuthenticated, stranger, 0, true},
		{"admin-only/user", CapAdminOnly, owner, apperrors.KindForbidden, false},
		{"admin-only/admin", CapAdminOnly, admin, 0, true},
		{"self-or-admin/owner", CapSelfOrAdmin, owner, 0, true},
		{"self-or-admin/stranger", CapSelfOrAdmin, stranger, apperrors.KindForbidden, false},
		{"self-or-admin/admin", CapSelfOrAdmin, admin, 0, true},
		{"any/anonymous", CapAnyAuthenticated, nil, apperrors.KindUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.kind, tt.principal, owner.ID)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.IsKind(err, tt.want), "got %v", err)
		})
	}
}

func TestCapabilityKind_String(t *testing.T) {
	assert.Equal(t, "self_or_admin", CapSelfOrAdmin.String())
	assert.Equal(t, "unknown", CapabilityKind(42).String())
}
