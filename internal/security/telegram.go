package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidInitData = errors.New("invalid telegram init data")
	ErrInitDataExpired = errors.New("telegram init data expired")
)

// TelegramUser is the user object embedded in mini-app init data
type TelegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// DisplayName falls back from first name to username
func (u TelegramUser) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "User"
}

// TelegramVerifier checks the signature on Telegram Web App init data
type TelegramVerifier struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewTelegramVerifier creates a verifier for the given bot token.
// A zero maxAge disables the freshness check.
func NewTelegramVerifier(botToken string, maxAge time.Duration) *TelegramVerifier {
	return &TelegramVerifier{
		secret: telegramSecret(botToken),
		maxAge: maxAge,
		now:    time.Now,
	}
}

func telegramSecret(botToken string) []byte {
	mac := hmac.New(sha256.New, []byte("WebAppData"))
	mac.Write([]byte(botToken))
	return mac.Sum(nil)
}

// Verify validates the hash and auth_date of raw init data and returns its user
func (v *TelegramVerifier) Verify(initData string) (*TelegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInitData, err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, fmt.Errorf("%w: missing hash", ErrInvalidInitData)
	}

	expected := SignInitData(v.secret, values)
	if !hmac.Equal([]byte(hash), []byte(expected)) {
		return nil, fmt.Errorf("%w: hash mismatch", ErrInvalidInitData)
	}

	authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", ErrInvalidInitData)
	}
	if v.maxAge > 0 && v.now().Sub(time.Unix(authDate, 0)) > v.maxAge {
		return nil, ErrInitDataExpired
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, fmt.Errorf("%w: missing user", ErrInvalidInitData)
	}

	var user TelegramUser
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, fmt.Errorf("%w: bad user: %v", ErrInvalidInitData, err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInitData)
	}

	return &user, nil
}

// SignInitData computes the hex hash Telegram attaches to init data.
// The hash field itself is excluded from the check string.
func SignInitData(secret []byte, values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if k == "hash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+"="+values.Get(k))
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strings.Join(lines, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

// BotSecret exposes the derived signing secret for a bot token
func BotSecret(botToken string) []byte {
	return telegramSecret(botToken)
}
