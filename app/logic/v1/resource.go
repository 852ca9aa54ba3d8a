package v1

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/samber/lo"

	"github.com/memochat-ai/memochat/app/core"
	"github.com/memochat-ai/memochat/pkg/chunk"
	"github.com/memochat-ai/memochat/pkg/errors"
	"github.com/memochat-ai/memochat/pkg/types"
	"github.com/memochat-ai/memochat/pkg/utils"
)

const (
	// 记忆检索固定参数
	MEMORY_SIMILARITY_THRESHOLD = 0.5
	MEMORY_SEARCH_LIMIT         = 4
)

type ResourceLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewResourceLogic(ctx context.Context, core *core.Core) *ResourceLogic {
	return &ResourceLogic{
		ctx:  ctx,
		core: core,
	}
}

// CreateResource 入库原始内容并写入分块向量。面向工具调用方，
// 返回的始终是一段可读的结果描述，而不是 error。
func (l *ResourceLogic) CreateResource(content string) (string, bool) {
	if strings.TrimSpace(content) == "" {
		return "Content must not be empty.", false
	}

	resource := types.Resource{
		ID:        utils.GenRandomID(),
		Content:   content,
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	if err := l.core.Store().ResourceStore().Create(l.ctx, resource); err != nil {
		slog.Error("failed to create resource", slog.String("error", err.Error()))
		return "Error, please try again.", false
	}

	chunks := chunk.Split(content)
	if len(chunks) == 0 {
		return "Resource successfully created and embedded.", true
	}

	timer := l.core.Metrics().EmbeddingTimer("documents")
	result, err := l.core.AI().EmbedDocuments(l.ctx, chunks)
	timer.ObserveDuration()
	if err != nil {
		// 资源本体已落库，向量缺失可以通过重建补齐
		slog.Error("failed to embed resource chunks",
			slog.String("resource_id", resource.ID),
			slog.String("error", err.Error()))
		return "Error, please try again.", false
	}
	if len(result.Data) != len(chunks) {
		slog.Error("embedding count mismatch",
			slog.String("resource_id", resource.ID),
			slog.Int("chunks", len(chunks)),
			slog.Int("vectors", len(result.Data)))
		return "Error, please try again.", false
	}

	embeddings := lo.Map(chunks, func(item string, i int) types.Embedding {
		return types.Embedding{
			ID:         utils.GenUniqIDStr(),
			ResourceID: &resource.ID,
			Content:    item,
			Embedding:  pgvector.NewVector(result.Data[i]),
		}
	})

	if err = l.core.Store().EmbeddingStore().BatchCreate(l.ctx, embeddings); err != nil {
		slog.Error("failed to store embeddings",
			slog.String("resource_id", resource.ID),
			slog.String("error", err.Error()))
		return "Error, please try again.", false
	}

	return "Resource successfully created and embedded.", true
}

// SearchMemory 将问题向量化后做余弦相似度检索，阈值与条数固定。
func (l *ResourceLogic) SearchMemory(question string) ([]types.MemoryFragment, error) {
	timer := l.core.Metrics().EmbeddingTimer("query")
	vector, err := l.core.AI().EmbedQuery(l.ctx, question)
	timer.ObserveDuration()
	if err != nil {
		l.core.Metrics().LLMErrorInc("embedding")
		return nil, errors.New("ResourceLogic.SearchMemory.EmbedQuery", errors.ERROR_INTERNAL, err)
	}

	fragments, err := l.core.Store().EmbeddingStore().Query(l.ctx, pgvector.NewVector(vector), MEMORY_SIMILARITY_THRESHOLD, MEMORY_SEARCH_LIMIT)
	if err != nil {
		return nil, errors.New("ResourceLogic.SearchMemory.EmbeddingStore.Query", errors.ERROR_INTERNAL, err)
	}
	if fragments == nil {
		fragments = []types.MemoryFragment{}
	}
	return fragments, nil
}

func (l *ResourceLogic) GetResource(id string) (*types.Resource, error) {
	resource, err := l.core.Store().ResourceStore().GetResource(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.New("ResourceLogic.GetResource.ResourceStore.GetResource", errors.ERROR_NOTFOUND, err).Code(http.StatusNotFound)
		}
		return nil, errors.New("ResourceLogic.GetResource.ResourceStore.GetResource", errors.ERROR_INTERNAL, err)
	}
	return resource, nil
}

func (l *ResourceLogic) ListResources(page, pageSize uint64) ([]types.Resource, int64, error) {
	list, err := l.core.Store().ResourceStore().ListResources(l.ctx, page, pageSize)
	if err != nil {
		return nil, 0, errors.New("ResourceLogic.ListResources.ResourceStore.ListResources", errors.ERROR_INTERNAL, err)
	}
	total, err := l.core.Store().ResourceStore().Total(l.ctx)
	if err != nil {
		return nil, 0, errors.New("ResourceLogic.ListResources.ResourceStore.Total", errors.ERROR_INTERNAL, err)
	}
	return list, total, nil
}

// DeleteResource 级联删除资源及其全部向量，同一事务内完成。
func (l *ResourceLogic) DeleteResource(id string) error {
	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().EmbeddingStore().DeleteByResource(ctx, id); err != nil {
			return errors.New("ResourceLogic.DeleteResource.EmbeddingStore.DeleteByResource", errors.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().ResourceStore().Delete(ctx, id); err != nil {
			return errors.New("ResourceLogic.DeleteResource.ResourceStore.Delete", errors.ERROR_INTERNAL, err)
		}
		return nil
	})
}

// RebuildEmbeddings 重建某个资源的向量，用于补齐嵌入失败留下的缺口。
func (l *ResourceLogic) RebuildEmbeddings(id string) error {
	resource, err := l.GetResource(id)
	if err != nil {
		return err
	}

	chunks := chunk.Split(resource.Content)
	if len(chunks) == 0 {
		return nil
	}

	result, err := l.core.AI().EmbedDocuments(l.ctx, chunks)
	if err != nil {
		return errors.New("ResourceLogic.RebuildEmbeddings.EmbedDocuments", errors.ERROR_INTERNAL, err)
	}
	if len(result.Data) != len(chunks) {
		return errors.New("ResourceLogic.RebuildEmbeddings.mismatch", errors.ERROR_INTERNAL,
			fmt.Errorf("expected %d vectors, got %d", len(chunks), len(result.Data)))
	}

	embeddings := lo.Map(chunks, func(item string, i int) types.Embedding {
		return types.Embedding{
			ID:         utils.GenUniqIDStr(),
			ResourceID: &resource.ID,
			Content:    item,
			Embedding:  pgvector.NewVector(result.Data[i]),
		}
	})

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().EmbeddingStore().DeleteByResource(ctx, id); err != nil {
			return errors.New("ResourceLogic.RebuildEmbeddings.DeleteByResource", errors.ERROR_INTERNAL, err)
		}
		if err := l.core.Store().EmbeddingStore().BatchCreate(ctx, embeddings); err != nil {
			return errors.New("ResourceLogic.RebuildEmbeddings.BatchCreate", errors.ERROR_INTERNAL, err)
		}
		return nil
	})
}
