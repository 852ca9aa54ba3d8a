package store

import (
	"context"

	"github.com/pgvector/pgvector-go"

	"github.com/memochat-ai/memochat/pkg/sqlstore"
	"github.com/memochat-ai/memochat/pkg/types"
)

type ResourceStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Resource) error
	GetResource(ctx context.Context, id string) (*types.Resource, error)
	Delete(ctx context.Context, id string) error
	ListResources(ctx context.Context, page, pageSize uint64) ([]types.Resource, error)
	Total(ctx context.Context) (int64, error)
}

type EmbeddingStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Embedding) error
	BatchCreate(ctx context.Context, datas []types.Embedding) error
	List(ctx context.Context, opts types.GetEmbeddingOptions, page, pageSize uint64) ([]types.Embedding, error)
	DeleteByResource(ctx context.Context, resourceID string) error
	// Query 余弦相似度检索：similarity = 1 - (embedding <=> q)
	Query(ctx context.Context, vector pgvector.Vector, threshold float32, limit uint64) ([]types.MemoryFragment, error)
}

type MessageStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Message) error
	GetMessage(ctx context.Context, id string) (*types.Message, error)
	ListChatMessages(ctx context.Context, chatID string) ([]types.Message, error)
}

type ToolCallStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.ToolCall) error
	// SetResult 按 provider 关联ID写入结果，每次调用恰好写入一次
	SetResult(ctx context.Context, toolCallID string, result types.JSONB) error
	ListByMessageIDs(ctx context.Context, messageIDs []string) ([]types.ToolCall, error)
}

type SessionStore interface {
	sqlstore.SqlCommons
	Create(ctx context.Context, data types.Session) error
	GetSession(ctx context.Context, token string) (*types.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, before int64) (int64, error)
}

type UnicornStore interface {
	sqlstore.SqlCommons
	// SeedReplace 清空并重建只读数据集，单事务执行
	SeedReplace(ctx context.Context, datas []types.Unicorn) error
	Total(ctx context.Context) (int64, error)
	// ExecuteReadOnly 执行已通过 sqlguard 校验的检索语句，原样返回行
	ExecuteReadOnly(ctx context.Context, query string) (*types.QueryRows, error)
}
