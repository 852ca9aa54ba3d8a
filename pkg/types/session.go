package types

// Session 登录会话，由 OAuth 回调创建
type Session struct {
	Token     string `json:"token" db:"token"`
	UserName  string `json:"user_name" db:"user_name"`
	UserEmail string `json:"user_email" db:"user_email"`
	ExpiresAt int64  `json:"expires_at" db:"expires_at"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}
