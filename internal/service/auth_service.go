package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/logging"
	"storefront/internal/model"
	"storefront/internal/repository"
)

var (
	// ErrEmailRequired is returned when login or refresh is attempted without an email.
	ErrEmailRequired = errors.Validation("an email is required to generate a token", errors.FieldError{
		Field:    "email",
		Location: errors.LocationBody,
		Messages: []string{`"email" is required`},
	})
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.Unauthorized("incorrect email or password")
	// ErrInvalidRefreshCredentials is returned when the refresh token is unknown or belongs to another email.
	ErrInvalidRefreshCredentials = errors.Unauthorized("incorrect email or refresh token")
	// ErrRefreshTokenExpired is returned when the refresh token is past its expiry.
	ErrRefreshTokenExpired = errors.Unauthorized("invalid refresh token")
)

// RegisterInput carries the fields of a new principal.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult is returned by login and refresh.
type AuthResult struct {
	User         *model.User
	AccessToken  string
	RefreshToken string
	ExpiresIn    time.Duration
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, email, refreshToken string) (*AuthResult, error)
}

type authService struct {
	users       repository.UserRepository
	credentials *auth.CredentialStore
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
	refreshTTL  time.Duration
	now         auth.Clock
	log         logging.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	credentials *auth.CredentialStore,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	refreshTTL time.Duration,
	now auth.Clock,
	log logging.Logger,
) AuthService {
	if refreshTTL <= 0 {
		refreshTTL = auth.DefaultRefreshTokenTTL
	}
	if now == nil {
		now = time.Now
	}
	return &authService{
		users:       users,
		credentials: credentials,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		refreshTTL:  refreshTTL,
		now:         now,
		log:         log,
	}
}

// Register creates a principal with the user role and a hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	hash, err := s.credentials.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, auth.CheckDuplicateEmail(err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login authenticates a principal and issues an access token and a refresh token.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !s.credentials.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	record := auth.NewRefreshRecord(user.ID, user.Email, s.now().Add(s.refreshTTL))
	if err := s.tokenStore.StoreRefreshToken(ctx, record); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: record.Token,
		ExpiresIn:    s.jwtService.TTL(),
	}, nil
}

// RefreshToken issues a new access token for a stored, unexpired refresh token.
// The password is not checked again and the refresh record is left untouched.
func (s *authService) RefreshToken(ctx context.Context, email, refreshToken string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}

	record, err := s.tokenStore.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if stderrors.Is(err, auth.ErrRefreshTokenNotFound) {
			return nil, ErrInvalidRefreshCredentials
		}
		return nil, fmt.Errorf("load refresh token: %w", err)
	}
	if record.Email != model.NormalizeEmail(email) {
		return nil, ErrInvalidRefreshCredentials
	}
	if record.Expired(s.now()) {
		return nil, ErrRefreshTokenExpired
	}

	user, err := s.users.FindByID(ctx, record.PrincipalID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvalidRefreshCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	accessToken, err := s.jwtService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: record.Token,
		ExpiresIn:    s.jwtService.TTL(),
	}, nil
}
