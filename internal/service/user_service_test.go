package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
	"storefront/internal/testutil"
)

func TestUserService_UpdateUser(t *testing.T) {
	gdb := testutil.NewDB(t)
	creds := auth.NewCredentialStore(bcrypt.MinCost)
	svc := NewUserService(repository.NewUserRepository(gdb), creds)
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "u@example.com", model.RoleUser)
	admin := testutil.CreateUser(t, gdb, "a@example.com", model.RoleAdmin)
	testutil.CreateUser(t, gdb, "taken@example.com", model.RoleUser)

	t.Run("users cannot change their role", func(t *testing.T) {
		role := model.RoleAdmin
		_, err := svc.UpdateUser(ctx, u, u.ID, UpdateUserInput{Role: &role})
		assert.True(t, errors.IsKind(err, errors.KindForbidden))
	})

	t.Run("duplicate email", func(t *testing.T) {
		email := "Taken@Example.com"
		_, err := svc.UpdateUser(ctx, u, u.ID, UpdateUserInput{Email: &email})
		var appErr *errors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, errors.KindConflict, appErr.Kind)
		assert.Equal(t, "email", appErr.Fields[0].Field)
	})

	t.Run("admin promotes and password is rehashed", func(t *testing.T) {
		role := model.RoleAdmin
		password := "new-password"
		updated, err := svc.UpdateUser(ctx, admin, u.ID, UpdateUserInput{Role: &role, Password: &password})
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, updated.Role)
		assert.True(t, creds.Verify(password, updated.PasswordHash))

		reloaded, err := svc.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, reloaded.Role)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.DeleteUser(ctx, u.ID))
		_, err := svc.GetUser(ctx, u.ID)
		assert.True(t, errors.IsKind(err, errors.KindNotFound))
	})
}

func TestUserService_ReadsThroughToStore(t *testing.T) {
	gdb := testutil.NewDB(t)
	svc := NewUserService(repository.NewUserRepository(gdb), auth.NewCredentialStore(bcrypt.MinCost))
	ctx := context.Background()

	u := testutil.CreateUser(t, gdb, "direct@example.com", model.RoleAdmin)
	_, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, gdb.Model(&model.User{}).Where("id = ?", u.ID).Update("role", model.RoleUser).Error)
	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, got.Role)

	require.NoError(t, gdb.Delete(&model.User{}, "id = ?", u.ID).Error)
	_, err = svc.GetUser(ctx, u.ID)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))
}
