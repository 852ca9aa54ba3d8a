package sqlstore

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/memochat-ai/memochat/pkg/sqlguard"
	"github.com/memochat-ai/memochat/pkg/types"
)

type UnicornStore struct {
	CommonFields
	provider *Provider
}

func NewUnicornStore(provider *Provider) *UnicornStore {
	repo := &UnicornStore{provider: provider}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_UNICORN)
	repo.SetAllColumns("id", "company", "valuation", "date", "country", "city", "industry", "investors")
	return repo
}

const seedBatchSize = 500

// SeedReplace 清空并重建只读数据集，整体运行在一个事务中
func (s *UnicornStore) SeedReplace(ctx context.Context, datas []types.Unicorn) error {
	return s.provider.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetMaster(ctx).Exec(fmt.Sprintf("DELETE FROM %s", s.GetTable())); err != nil {
			return err
		}

		for start := 0; start < len(datas); start += seedBatchSize {
			end := start + seedBatchSize
			if end > len(datas) {
				end = len(datas)
			}

			query := sq.Insert(s.GetTable()).
				Columns("company", "valuation", "date", "country", "city", "industry", "investors")
			for _, data := range datas[start:end] {
				query = query.Values(data.Company, data.Valuation, data.Date, data.Country, data.City, data.Industry, data.Investors)
			}

			queryString, args, err := query.ToSql()
			if err != nil {
				return ErrorSqlBuild(err)
			}

			if _, err = s.GetMaster(ctx).Exec(queryString, args...); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *UnicornStore) Total(ctx context.Context) (int64, error) {
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

// ExecuteReadOnly 执行模型生成的检索语句。语句在执行前必须再次通过
// sqlguard 校验，不信任任何上游的检查。
func (s *UnicornStore) ExecuteReadOnly(ctx context.Context, query string) (*types.QueryRows, error) {
	if err := sqlguard.EnsureReadOnly(query); err != nil {
		return nil, err
	}

	rows, err := s.GetReplica(ctx).Queryx(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &types.QueryRows{
		Columns: columns,
		Rows:    []map[string]any{},
	}
	for rows.Next() {
		row := make(map[string]any)
		if err = rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if raw, ok := v.([]byte); ok {
				row[k] = string(raw)
			}
		}
		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}
