package types

// Resource 用户提交的持久化记忆原文
type Resource struct {
	ID        string `json:"id" db:"id"`
	Content   string `json:"content" db:"content"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
	UpdatedAt int64  `json:"updated_at" db:"updated_at"`
}
