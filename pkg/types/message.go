package types

type MessageRole string

const (
	MESSAGE_ROLE_USER      = MessageRole("user")
	MESSAGE_ROLE_ASSISTANT = MessageRole("assistant")
)

func (r MessageRole) String() string {
	return string(r)
}

// Message 会话中的一轮消息。Content 为空表示该条助手消息只携带工具调用。
type Message struct {
	ID        string      `json:"id" db:"id"`
	ChatID    string      `json:"chat_id" db:"chat_id"`
	Role      MessageRole `json:"role" db:"role"`
	Content   *string     `json:"content" db:"content"`
	CreatedAt int64       `json:"created_at" db:"created_at"`
}

// ToolCall 助手在一轮回复中发起的一次工具调用。Result 在工具完成后被设置一次。
type ToolCall struct {
	ID         string `json:"id" db:"id"`
	MessageID  string `json:"message_id" db:"message_id"`
	ToolCallID string `json:"tool_call_id" db:"tool_call_id"` // provider 流中用于关联结果的ID
	ToolName   string `json:"tool_name" db:"tool_name"`
	Args       JSONB  `json:"args" db:"args"`
	Result     JSONB  `json:"result" db:"result"`
}

// MessageDetail groups a message with the tool calls it carried.
type MessageDetail struct {
	Message
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}
