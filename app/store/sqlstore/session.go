package sqlstore

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/memochat-ai/memochat/pkg/types"
)

type SessionStore struct {
	CommonFields
}

func NewSessionStore(provider SqlProviderAchieve) *SessionStore {
	repo := &SessionStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_SESSION)
	repo.SetAllColumns("token", "user_name", "user_email", "expires_at", "created_at")
	return repo
}

func (s *SessionStore) Create(ctx context.Context, data types.Session) error {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().Unix()
	}
	query := sq.Insert(s.GetTable()).
		Columns("token", "user_name", "user_email", "expires_at", "created_at").
		Values(data.Token, data.UserName, data.UserEmail, data.ExpiresAt, data.CreatedAt)

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

func (s *SessionStore) GetSession(ctx context.Context, token string) (*types.Session, error) {
	query := sq.Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"token": token})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Session
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	query := sq.Delete(s.GetTable()).Where(sq.Eq{"token": token})

	queryString, args, err := query.ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = s.GetMaster(ctx).Exec(queryString, args...)
	return err
}

// DeleteExpired 清理过期会话，由后台定时任务调用
func (s *SessionStore) DeleteExpired(ctx context.Context, before int64) (int64, error) {
	query := sq.Delete(s.GetTable()).Where(sq.Lt{"expires_at": before})

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	result, err := s.GetMaster(ctx).Exec(queryString, args...)
	if err != nil {
		return 0, err
	}
	affected, _ := result.RowsAffected()
	return affected, nil
}
