package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/memochat-ai/memochat/pkg/types"
)

type MessageStore struct {
	CommonFields
}

func NewMessageStore(provider SqlProviderAchieve) *MessageStore {
	repo := &MessageStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_MESSAGE)
	repo.SetAllColumns("id", "chat_id", "role", "content", "created_at")
	return repo
}

// Create 写入一轮消息，消息创建后不再修改
func (s *MessageStore) Create(ctx context.Context, data types.Message) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("id", "chat_id", "role", "content", "created_at").
		Values(data.ID, data.ChatID, data.Role, data.Content, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *MessageStore) GetMessage(ctx context.Context, id string) (*types.Message, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Message
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListChatMessages 按时间顺序返回一个会话的全部消息
func (s *MessageStore) ListChatMessages(ctx context.Context, chatID string) ([]types.Message, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).
		Where(sq.Eq{"chat_id": chatID}).OrderBy("created_at", "id")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res []types.Message
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}
