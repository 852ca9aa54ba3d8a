package sqlstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/memochat-ai/memochat/pkg/types"
)

type ToolCallStore struct {
	CommonFields
}

func NewToolCallStore(provider SqlProviderAchieve) *ToolCallStore {
	repo := &ToolCallStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_TOOL_CALL)
	repo.SetAllColumns("id", "message_id", "tool_call_id", "tool_name", "args", "result")
	return repo
}

// Create 随助手消息一起写入，result 此时为空
func (s *ToolCallStore) Create(ctx context.Context, data types.ToolCall) error {
	query := sq.Insert(s.GetTable()).
		Columns("id", "message_id", "tool_call_id", "tool_name", "args", "result").
		Values(data.ID, data.MessageID, data.ToolCallID, data.ToolName, data.Args, data.Result)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// SetResult 工具完成后按关联ID写入结果
func (s *ToolCallStore) SetResult(ctx context.Context, toolCallID string, result types.JSONB) error {
	query := sq.Update(s.GetTable()).
		Set("result", result).
		Where(sq.Eq{"tool_call_id": toolCallID})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *ToolCallStore) ListByMessageIDs(ctx context.Context, messageIDs []string) ([]types.ToolCall, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}

	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"message_id": messageIDs})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.ToolCall
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
