package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/cache"
)

func newTestTokenStore(t *testing.T, clock *fakeClock) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := cache.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return NewTokenStore(c, clock.Now), mr
}

func TestTokenStore_StoreAndGet(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	store, mr := newTestTokenStore(t, clock)
	ctx := context.Background()

	id := uuid.New()
	record := NewRefreshRecord(id, "jane@example.com", clock.t.Add(time.Hour))
	assert.True(t, strings.HasPrefix(record.Token, id.String()+"."))

	require.NoError(t, store.StoreRefreshToken(ctx, record))
	assert.Equal(t, time.Hour+refreshRecordGrace, mr.TTL(refreshTokenKeyPrefix+record.Token))

	got, err := store.GetRefreshToken(ctx, record.Token)
	require.NoError(t, err)
	assert.Equal(t, record.Email, got.Email)
	assert.Equal(t, record.PrincipalID, got.PrincipalID)
	assert.True(t, record.ExpiresAt.Equal(got.ExpiresAt))

	// reading does not consume the record
	_, err = store.GetRefreshToken(ctx, record.Token)
	assert.NoError(t, err)
}

func TestTokenStore_Missing(t *testing.T) {
	store, _ := newTestTokenStore(t, &fakeClock{t: time.Now()})

	_, err := store.GetRefreshToken(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)

	_, err = store.GetRefreshToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_ExpiredRecordStillReadable(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	store, mr := newTestTokenStore(t, clock)
	ctx := context.Background()

	record := NewRefreshRecord(uuid.New(), "a@example.com", clock.t.Add(time.Minute))
	require.NoError(t, store.StoreRefreshToken(ctx, record))

	mr.FastForward(2 * time.Minute)
	clock.t = clock.t.Add(2 * time.Minute)
	got, err := store.GetRefreshToken(ctx, record.Token)
	require.NoError(t, err)
	assert.True(t, got.Expired(clock.t))

	mr.FastForward(refreshRecordGrace)
	_, err = store.GetRefreshToken(ctx, record.Token)
	assert.ErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestTokenStore_RedisDown(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	store, mr := newTestTokenStore(t, clock)
	ctx := context.Background()
	mr.Close()

	record := NewRefreshRecord(uuid.New(), "a@example.com", clock.t.Add(time.Hour))
	assert.Error(t, store.StoreRefreshToken(ctx, record))

	_, err := store.GetRefreshToken(ctx, record.Token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRefreshTokenNotFound)
}

func TestRefreshRecord_Expired(t *testing.T) {
	exp := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := &RefreshRecord{ExpiresAt: exp}

	assert.False(t, r.Expired(exp.Add(-time.Nanosecond)))
	assert.True(t, r.Expired(exp))
	assert.True(t, r.Expired(exp.Add(time.Second)))
}
