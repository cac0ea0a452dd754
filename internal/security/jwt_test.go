package security_test

import (
	"testing"
	"time"

	"github.com/Rrens/content-creator-bot/internal/security"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	accessToken, err := manager.GenerateAccessToken("12345", "Alice", "telegram")
	if err != nil {
		t.Fatalf("failed to generate access token: %v", err)
	}

	if accessToken == "" {
		t.Error("access token is empty")
	}

	claims, err := manager.ValidateAccessToken(accessToken)
	if err != nil {
		t.Fatalf("failed to validate access token: %v", err)
	}

	if claims.UserID != "12345" {
		t.Errorf("user ID mismatch: got %v, want %v", claims.UserID, "12345")
	}
	if claims.DisplayName != "Alice" {
		t.Errorf("display name mismatch: got %v", claims.DisplayName)
	}
	if claims.Source != "telegram" {
		t.Errorf("source mismatch: got %v", claims.Source)
	}
}

func TestJWTManager_GenerateTokenPair(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	accessToken, refreshToken, expiresIn, err := manager.GenerateTokenPair("user_abc", "Bob", "manual")
	if err != nil {
		t.Fatalf("failed to generate token pair: %v", err)
	}

	if accessToken == "" {
		t.Error("access token is empty")
	}
	if refreshToken == "" {
		t.Error("refresh token is empty")
	}
	if expiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("expires in mismatch: got %d", expiresIn)
	}

	claims, err := manager.ValidateRefreshToken(refreshToken)
	if err != nil {
		t.Fatalf("failed to validate refresh token: %v", err)
	}
	if claims.UserID != "user_abc" || claims.DisplayName != "Bob" {
		t.Errorf("unexpected refresh claims: %+v", claims)
	}
}

func TestJWTManager_TokenKindsAreNotInterchangeable(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, time.Hour)

	access, refresh, _, err := manager.GenerateTokenPair("u1", "U", "manual")
	if err != nil {
		t.Fatalf("failed to generate token pair: %v", err)
	}

	if _, err := manager.ValidateAccessToken(refresh); err == nil {
		t.Error("expected refresh token to be rejected as access token")
	}
	if _, err := manager.ValidateRefreshToken(access); err == nil {
		t.Error("expected access token to be rejected as refresh token")
	}
}

func TestJWTManager_InvalidToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)

	if _, err := manager.ValidateAccessToken("invalid-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestJWTManager_WrongSecret(t *testing.T) {
	manager1 := security.NewJWTManager("secret-1-with-32-characters!!!", 15*time.Minute, 7*24*time.Hour)
	manager2 := security.NewJWTManager("secret-2-with-32-characters!!!", 15*time.Minute, 7*24*time.Hour)

	token, _ := manager1.GenerateAccessToken("u1", "U", "manual")

	if _, err := manager2.ValidateAccessToken(token); err == nil {
		t.Error("expected error for token signed with different secret")
	}
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	manager := security.NewJWTManager("test-secret-key-with-32-chars!!", -time.Minute, time.Hour)

	token, err := manager.GenerateAccessToken("u1", "U", "manual")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Error("expected error for expired token")
	}
}
