package types

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimension is fixed by the embedding model (text-embedding-ada-002).
const EmbeddingDimension = 1536

// Embedding 记忆切片及其向量表示
type Embedding struct {
	ID         string          `json:"id" db:"id"`
	ResourceID *string         `json:"resource_id" db:"resource_id"` // 级联删除的归属资源，可为空
	Content    string          `json:"content" db:"content"`
	Embedding  pgvector.Vector `json:"embedding" db:"embedding"`
}

// MemoryFragment is one similarity search hit. The json field names follow the
// payload the assistant tools expose ({name, similarity}).
type MemoryFragment struct {
	Content    string  `json:"name" db:"content"`
	Similarity float32 `json:"similarity" db:"similarity"`
}

type GetEmbeddingOptions struct {
	ID         string
	ResourceID string
}

func (opts GetEmbeddingOptions) Apply(query *sq.SelectBuilder) {
	if opts.ID != "" {
		*query = query.Where(sq.Eq{"id": opts.ID})
	}
	if opts.ResourceID != "" {
		*query = query.Where(sq.Eq{"resource_id": opts.ResourceID})
	}
}
