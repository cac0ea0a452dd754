package domain

// IdentitySource tells how a user was authenticated
type IdentitySource string

const (
	SourceTelegram IdentitySource = "telegram"
	SourceManual   IdentitySource = "manual"
)

// Identity is the authenticated end user. UserID scopes the session namespace.
type Identity struct {
	UserID      string         `json:"user_id"`
	DisplayName string         `json:"display_name"`
	Source      IdentitySource `json:"source"`
}

// ManualLogin represents the free-text login form
type ManualLogin struct {
	DisplayName string `json:"display_name" validate:"required,max=64"`
}

// TelegramLogin carries the raw initData string from the mini-app host
type TelegramLogin struct {
	InitData string `json:"init_data" validate:"required"`
}

// TokenPair represents JWT token pair
type TokenPair struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
	Identity     Identity `json:"identity"`
}
