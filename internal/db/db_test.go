package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/model"
)

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	gdb, err := Open(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:", Env: "production"})
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb, false))
	for _, m := range model.All() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}

	require.NoError(t, gdb.Create(&model.User{Email: "a@example.com", PasswordHash: "x"}).Error)
	require.NoError(t, Migrate(gdb, true))

	var count int64
	require.NoError(t, gdb.Model(&model.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
