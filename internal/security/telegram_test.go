package security

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"
)

const testBotToken = "123456:ABC-DEF"

func signedInitData(t *testing.T, botToken string, authDate time.Time, user string) string {
	t.Helper()

	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	if user != "" {
		values.Set("user", user)
	}
	values.Set("hash", SignInitData(BotSecret(botToken), values))
	return values.Encode()
}

func TestTelegramVerifier_Verify(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	v := NewTelegramVerifier(testBotToken, 24*time.Hour)
	v.now = func() time.Time { return now }

	t.Run("valid", func(t *testing.T) {
		data := signedInitData(t, testBotToken, now.Add(-time.Minute), `{"id":42,"first_name":"Alice","username":"alice"}`)

		user, err := v.Verify(data)
		if err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if user.ID != 42 || user.DisplayName() != "Alice" {
			t.Errorf("unexpected user: %+v", user)
		}
	})

	t.Run("wrong bot token", func(t *testing.T) {
		data := signedInitData(t, "999:other", now, `{"id":42,"first_name":"Alice"}`)

		if _, err := v.Verify(data); !errors.Is(err, ErrInvalidInitData) {
			t.Errorf("expected ErrInvalidInitData, got %v", err)
		}
	})

	t.Run("tampered user", func(t *testing.T) {
		data := signedInitData(t, testBotToken, now, `{"id":42,"first_name":"Alice"}`)
		values, _ := url.ParseQuery(data)
		values.Set("user", `{"id":1,"first_name":"Mallory"}`)

		if _, err := v.Verify(values.Encode()); !errors.Is(err, ErrInvalidInitData) {
			t.Errorf("expected ErrInvalidInitData, got %v", err)
		}
	})

	t.Run("missing hash", func(t *testing.T) {
		if _, err := v.Verify("auth_date=1&user=%7B%7D"); !errors.Is(err, ErrInvalidInitData) {
			t.Errorf("expected ErrInvalidInitData, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		data := signedInitData(t, testBotToken, now.Add(-48*time.Hour), `{"id":42,"first_name":"Alice"}`)

		if _, err := v.Verify(data); !errors.Is(err, ErrInitDataExpired) {
			t.Errorf("expected ErrInitDataExpired, got %v", err)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		data := signedInitData(t, testBotToken, now, "")

		if _, err := v.Verify(data); !errors.Is(err, ErrInvalidInitData) {
			t.Errorf("expected ErrInvalidInitData, got %v", err)
		}
	})
}

func TestTelegramVerifier_NoMaxAge(t *testing.T) {
	v := NewTelegramVerifier(testBotToken, 0)
	data := signedInitData(t, testBotToken, time.Unix(1000, 0), `{"id":7,"username":"bob"}`)

	user, err := v.Verify(data)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if user.DisplayName() != "bob" {
		t.Errorf("expected username fallback, got %q", user.DisplayName())
	}
}

func TestTelegramUser_DisplayName(t *testing.T) {
	if got := (TelegramUser{ID: 1}).DisplayName(); got != "User" {
		t.Errorf("expected default display name, got %q", got)
	}
}
