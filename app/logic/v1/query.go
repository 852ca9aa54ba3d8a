package v1

import (
	"context"

	"github.com/memochat-ai/memochat/app/core"
	"github.com/memochat-ai/memochat/pkg/errors"
	"github.com/memochat-ai/memochat/pkg/sqlguard"
	"github.com/memochat-ai/memochat/pkg/types"
)

type QueryLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewQueryLogic(ctx context.Context, core *core.Core) *QueryLogic {
	return &QueryLogic{
		ctx:  ctx,
		core: core,
	}
}

// Generate 将自然语言问题交给模型翻译为针对 unicorns 数据集的检索语句。
// 生成结果未必安全，执行前必须再过 sqlguard。
func (l *QueryLogic) Generate(input string) (string, error) {
	timer := l.core.Metrics().LLMRequestTimer("generate_sql")
	query, err := l.core.AI().GenerateSQL(l.ctx, input)
	timer.ObserveDuration()
	if err != nil {
		l.core.Metrics().LLMErrorInc("generate_sql")
		return "", errors.New("QueryLogic.Generate.GenerateSQL", errors.ERROR_INTERNAL, err)
	}
	return query, nil
}

// Execute 校验并执行一条检索语句，拒绝任何写操作。
func (l *QueryLogic) Execute(query string) (*types.QueryRows, error) {
	if err := sqlguard.EnsureReadOnly(query); err != nil {
		return nil, errors.New("QueryLogic.Execute.EnsureReadOnly", errors.ERROR_FORBIDDEN_QUERY, err)
	}

	rows, err := l.core.Store().UnicornStore().ExecuteReadOnly(l.ctx, query)
	if err != nil {
		return nil, errors.New("QueryLogic.Execute.UnicornStore.ExecuteReadOnly", errors.ERROR_INTERNAL, err)
	}
	return rows, nil
}

type QueryRunResult struct {
	Question string           `json:"question"`
	Query    string           `json:"query"`
	Results  *types.QueryRows `json:"results"`
}

// GenerateAndRun 生成并执行，供 databaseTool 一步完成取数。
func (l *QueryLogic) GenerateAndRun(question string) (*QueryRunResult, error) {
	query, err := l.Generate(question)
	if err != nil {
		return nil, err
	}

	rows, err := l.Execute(query)
	if err != nil {
		return nil, err
	}

	return &QueryRunResult{
		Question: question,
		Query:    query,
		Results:  rows,
	}, nil
}
