package types

import "fmt"

type TableName string

func (s TableName) Name() string {
	return fmt.Sprintf("%s%s", TABLE_PREFIX, s)
}

const TABLE_PREFIX = "memochat_"

const (
	TABLE_RESOURCE  = TableName("resources")
	TABLE_EMBEDDING = TableName("embeddings")
	TABLE_MESSAGE   = TableName("messages")
	TABLE_TOOL_CALL = TableName("tool_calls")
	TABLE_SESSION   = TableName("sessions")
	TABLE_UNICORN   = TableName("unicorns")
)
