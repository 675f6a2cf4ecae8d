package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/cache"
)

const refreshTokenKeyPrefix = "refresh_token:"

// DefaultRefreshTokenTTL is used when no refresh TTL is configured.
const DefaultRefreshTokenTTL = 30 * 24 * time.Hour

// refreshRecordGrace keeps a record in redis past its expiry so an expired token is
// recognized as expired rather than unknown.
const refreshRecordGrace = 24 * time.Hour

// ErrRefreshTokenNotFound is returned when no record exists for a refresh token.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshRecord is the stored side of an opaque refresh token.
type RefreshRecord struct {
	Token       string    `json:"token"`
	Email       string    `json:"email"`
	PrincipalID uuid.UUID `json:"principalId"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Expired reports whether the record is no longer usable at now.
func (r *RefreshRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// NewRefreshRecord builds a record for a fresh opaque token of the form "<principal id>.<random>".
func NewRefreshRecord(principalID uuid.UUID, email string, expiresAt time.Time) *RefreshRecord {
	return &RefreshRecord{
		Token:       principalID.String() + "." + strings.ReplaceAll(uuid.NewString(), "-", ""),
		Email:       email,
		PrincipalID: principalID,
		ExpiresAt:   expiresAt,
	}
}

// TokenStoreInterface defines the interface for refresh token storage.
// Records are written once at login and only read afterwards.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, record *RefreshRecord) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshRecord, error)
}

// TokenStore keeps refresh records in Redis.
type TokenStore struct {
	cache *cache.Client
	now   Clock
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client, now Clock) *TokenStore {
	if now == nil {
		now = time.Now
	}
	return &TokenStore{cache: cache, now: now}
}

// StoreRefreshToken saves record until its expiry plus a grace window.
// Validity is decided by ExpiresAt, never by the redis TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, record *RefreshRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal refresh record: %w", err)
	}

	ttl := max(record.ExpiresAt.Sub(s.now()), 0) + refreshRecordGrace
	if err := s.cache.SetStrict(ctx, refreshTokenKeyPrefix+record.Token, payload, ttl); err != nil {
		return fmt.Errorf("write refresh record: %w", err)
	}
	return nil
}

// GetRefreshToken loads the record for token.
func (s *TokenStore) GetRefreshToken(ctx context.Context, token string) (*RefreshRecord, error) {
	if token == "" {
		return nil, ErrRefreshTokenNotFound
	}
	data, err := s.cache.GetStrict(ctx, refreshTokenKeyPrefix+token)
	if err != nil {
		return nil, fmt.Errorf("read refresh record: %w", err)
	}
	if data == nil {
		return nil, ErrRefreshTokenNotFound
	}

	var record RefreshRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal refresh record: %w", err)
	}
	return &record, nil
}
