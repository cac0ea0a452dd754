package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/Rrens/content-creator-bot/internal/security"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTelegramDisabled   = errors.New("telegram login is not configured")
)

// AuthService issues tokens for mini-app and manual logins
type AuthService struct {
	jwtManager *security.JWTManager
	verifier   *security.TelegramVerifier
}

// NewAuthService creates a new auth service. A nil verifier disables Telegram login.
func NewAuthService(jwtManager *security.JWTManager, verifier *security.TelegramVerifier) *AuthService {
	return &AuthService{
		jwtManager: jwtManager,
		verifier:   verifier,
	}
}

// LoginManual creates a fresh identity from a free-text display name
func (s *AuthService) LoginManual(ctx context.Context, input domain.ManualLogin) (*domain.TokenPair, error) {
	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		return nil, ErrInvalidCredentials
	}

	identity := domain.Identity{
		UserID:      "user_" + uuid.NewString(),
		DisplayName: name,
		Source:      domain.SourceManual,
	}
	return s.issue(identity)
}

// LoginTelegram verifies signed mini-app init data and logs in its user
func (s *AuthService) LoginTelegram(ctx context.Context, input domain.TelegramLogin) (*domain.TokenPair, error) {
	if s.verifier == nil {
		return nil, ErrTelegramDisabled
	}

	user, err := s.verifier.Verify(input.InitData)
	if err != nil {
		return nil, err
	}

	identity := domain.Identity{
		UserID:      strconv.FormatInt(user.ID, 10),
		DisplayName: user.DisplayName(),
		Source:      domain.SourceTelegram,
	}
	return s.issue(identity)
}

// Refresh refreshes the access token using a refresh token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}

	return s.issue(domain.Identity{
		UserID:      claims.UserID,
		DisplayName: claims.DisplayName,
		Source:      domain.IdentitySource(claims.Source),
	})
}

func (s *AuthService) issue(identity domain.Identity) (*domain.TokenPair, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtManager.GenerateTokenPair(
		identity.UserID, identity.DisplayName, string(identity.Source))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		Identity:     identity,
	}, nil
}
