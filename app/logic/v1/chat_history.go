package v1

import (
	"github.com/samber/lo"

	"github.com/memochat-ai/memochat/pkg/errors"
	"github.com/memochat-ai/memochat/pkg/types"
)

// GetChatHistory 按时间顺序返回会话消息，每条消息带上自己的工具调用记录。
func (l *ChatLogic) GetChatHistory(chatID string) ([]types.MessageDetail, error) {
	messages, err := l.core.Store().MessageStore().ListChatMessages(l.ctx, chatID)
	if err != nil {
		return nil, errors.New("ChatLogic.GetChatHistory.MessageStore.ListChatMessages", errors.ERROR_INTERNAL, err)
	}
	if len(messages) == 0 {
		return []types.MessageDetail{}, nil
	}

	messageIDs := lo.Map(messages, func(item types.Message, _ int) string {
		return item.ID
	})

	calls, err := l.core.Store().ToolCallStore().ListByMessageIDs(l.ctx, messageIDs)
	if err != nil {
		return nil, errors.New("ChatLogic.GetChatHistory.ToolCallStore.ListByMessageIDs", errors.ERROR_INTERNAL, err)
	}

	grouped := lo.GroupBy(calls, func(item types.ToolCall) string {
		return item.MessageID
	})

	return lo.Map(messages, func(item types.Message, _ int) types.MessageDetail {
		return types.MessageDetail{
			Message:   item,
			ToolCalls: grouped[item.ID],
		}
	}), nil
}
