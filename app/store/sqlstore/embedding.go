package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/pgvector/pgvector-go"

	"github.com/memochat-ai/memochat/pkg/types"
)

type EmbeddingStore struct {
	CommonFields
}

func NewEmbeddingStore(provider SqlProviderAchieve) *EmbeddingStore {
	repo := &EmbeddingStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_EMBEDDING)
	repo.SetAllColumns("id", "resource_id", "content", "embedding")
	return repo
}

// Create 创建新的向量切片记录
func (s *EmbeddingStore) Create(ctx context.Context, data types.Embedding) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "resource_id", "content", "embedding").
		Values(data.ID, data.ResourceID, data.Content, data.Embedding)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// BatchCreate 批量写入一个资源切分出的全部向量切片
func (s *EmbeddingStore) BatchCreate(ctx context.Context, datas []types.Embedding) error {
	if len(datas) == 0 {
		return nil
	}

	query := sq.Insert(s.GetTable()).
		Columns("id", "resource_id", "content", "embedding")

	for _, data := range datas {
		query = query.Values(data.ID, data.ResourceID, data.Content, data.Embedding)
	}

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *EmbeddingStore) List(ctx context.Context, opts types.GetEmbeddingOptions, page, pageSize uint64) ([]types.Embedding, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Limit(pageSize).Offset((page - 1) * pageSize).OrderBy("id")
	opts.Apply(&query)

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Embedding
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *EmbeddingStore) DeleteByResource(ctx context.Context, resourceID string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"resource_id": resourceID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// Query 余弦相似度检索
// pgvector supported distance functions are:
// <-> - L2 distance
// <#> - (negative) inner product
// <=> - cosine distance
// <+> - L1 distance (added in 0.7.0)
func (s *EmbeddingStore) Query(ctx context.Context, vector pgvector.Vector, threshold float32, limit uint64) ([]types.MemoryFragment, error) {
	queryString, args, err := buildSimilarityQuery(s.GetTable(), vector, threshold, limit)
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.MemoryFragment
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func buildSimilarityQuery(table string, vector pgvector.Vector, threshold float32, limit uint64) (string, []interface{}, error) {
	return sq.Select("content").
		Column(sq.Expr("1 - (embedding <=> ?) AS similarity", vector)).
		From(table).
		Where(sq.Expr("1 - (embedding <=> ?) > ?", vector, threshold)).
		OrderBy("similarity DESC").
		Limit(limit).
		ToSql()
}
