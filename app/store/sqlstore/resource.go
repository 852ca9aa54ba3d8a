package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/memochat-ai/memochat/pkg/types"
)

type ResourceStore struct {
	CommonFields
}

func NewResourceStore(provider SqlProviderAchieve) *ResourceStore {
	repo := &ResourceStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_RESOURCE)
	repo.SetAllColumns("id", "content", "created_at", "updated_at")
	return repo
}

// Create 创建新的记忆资源
func (s *ResourceStore) Create(ctx context.Context, data types.Resource) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "content", "created_at", "updated_at").
		Values(data.ID, data.Content, data.CreatedAt, data.UpdatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// GetResource 根据ID获取记忆资源
func (s *ResourceStore) GetResource(ctx context.Context, id string) (*types.Resource, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Resource
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Delete 删除记忆资源，embeddings 通过外键级联删除
func (s *ResourceStore) Delete(ctx context.Context, id string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// ListResources 分页获取记忆资源列表
func (s *ResourceStore) ListResources(ctx context.Context, page, pageSize uint64) ([]types.Resource, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Limit(pageSize).Offset((page - 1) * pageSize).OrderBy("created_at DESC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Resource
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *ResourceStore) Total(ctx context.Context) (int64, error) {
	query := sq.Select("COUNT(*)").From(s.GetTable())

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var total int64
	if err = s.GetReplica(ctx).Get(&total, queryString, args...); err != nil {
		return 0, err
	}
	return total, nil
}
