package v1

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/memochat-ai/memochat/app/core"
	"github.com/memochat-ai/memochat/pkg/ai"
	"github.com/memochat-ai/memochat/pkg/errors"
	"github.com/memochat-ai/memochat/pkg/types"
	"github.com/memochat-ai/memochat/pkg/utils"
)

type ChatLogic struct {
	ctx      context.Context
	core     *core.Core
	registry *ToolRegistry
}

func NewChatLogic(ctx context.Context, core *core.Core) *ChatLogic {
	resource := NewResourceLogic(ctx, core)
	query := NewQueryLogic(ctx, core)
	return &ChatLogic{
		ctx:      ctx,
		core:     core,
		registry: NewToolRegistry(core, resource, query),
	}
}

// streamAccumulator 把 provider 的增量事件拼装成一条完整的助手消息。
// 工具调用分片按 Index 归位，参数串按到达顺序拼接。
type streamAccumulator struct {
	content   strings.Builder
	toolCalls []openai.ToolCall
	finish    openai.FinishReason
}

// push consumes one stream event, returns the text delta it carried.
func (a *streamAccumulator) push(resp openai.ChatCompletionStreamResponse) string {
	if len(resp.Choices) == 0 {
		return ""
	}
	choice := resp.Choices[0]
	if choice.FinishReason != "" {
		a.finish = choice.FinishReason
	}

	for _, fragment := range choice.Delta.ToolCalls {
		idx := len(a.toolCalls)
		if fragment.Index != nil {
			idx = *fragment.Index
		}
		for idx >= len(a.toolCalls) {
			a.toolCalls = append(a.toolCalls, openai.ToolCall{Type: openai.ToolTypeFunction})
		}

		current := &a.toolCalls[idx]
		if fragment.ID != "" {
			current.ID = fragment.ID
		}
		if fragment.Type != "" {
			current.Type = fragment.Type
		}
		if fragment.Function.Name != "" {
			current.Function.Name = fragment.Function.Name
		}
		current.Function.Arguments += fragment.Function.Arguments
	}

	if choice.Delta.Content != "" {
		a.content.WriteString(choice.Delta.Content)
	}
	return choice.Delta.Content
}

func (a *streamAccumulator) Content() string {
	return a.content.String()
}

// HandleChatRequest 驱动一轮对话：先落库用户消息，再携带工具表调用模型，
// 流式消费回复；只要模型还在发起工具调用就继续往返，直到产出最终回答或
// 达到步数上限。onDelta 收到每个文本增量，可为 nil。
func (l *ChatLogic) HandleChatRequest(chatID string, incoming []openai.ChatCompletionMessage, onDelta func(delta string) error) error {
	if chatID == "" {
		chatID = uuid.NewString()
	}
	if len(incoming) == 0 {
		return errors.New("ChatLogic.HandleChatRequest.empty", errors.ERROR_INVALIDARGUMENT, nil)
	}

	last := incoming[len(incoming)-1]
	if last.Role == openai.ChatMessageRoleUser {
		content := last.Content
		if err := l.core.Store().MessageStore().Create(l.ctx, types.Message{
			ID:        utils.GenUniqIDStr(),
			ChatID:    chatID,
			Role:      types.MESSAGE_ROLE_USER,
			Content:   &content,
			CreatedAt: time.Now().Unix(),
		}); err != nil {
			return errors.New("ChatLogic.HandleChatRequest.MessageStore.Create", errors.ERROR_INTERNAL, err)
		}
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(incoming)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: ai.PROMPT_CHAT_MEMORY_EN,
	})
	messages = append(messages, l.trimHistory(incoming)...)

	tools := l.registry.Definitions()

	for step := 0; step < l.core.Cfg().Chat.MaxToolSteps; step++ {
		turn, err := l.streamOneTurn(messages, tools, onDelta)
		if err != nil {
			return err
		}

		if err = l.persistAssistantTurn(chatID, turn); err != nil {
			return err
		}

		messages = append(messages, openai.ChatCompletionMessage{
			Role:      openai.ChatMessageRoleAssistant,
			Content:   turn.Content(),
			ToolCalls: turn.toolCalls,
		})

		if len(turn.toolCalls) == 0 {
			return nil
		}

		// 结果按 provider 的关联ID对应回各自的调用，不依赖顺序
		for _, call := range turn.toolCalls {
			payload := l.registry.Dispatch(l.ctx, call.Function.Name, call.Function.Arguments)
			if err = l.core.Store().ToolCallStore().SetResult(l.ctx, call.ID, payload); err != nil {
				return errors.New("ChatLogic.HandleChatRequest.ToolCallStore.SetResult", errors.ERROR_INTERNAL, err)
			}
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    string(payload),
				ToolCallID: call.ID,
			})
		}
	}

	return errors.New("ChatLogic.HandleChatRequest.maxsteps", errors.ERROR_INTERNAL, nil)
}

func (l *ChatLogic) streamOneTurn(messages []openai.ChatCompletionMessage, tools []openai.Tool, onDelta func(delta string) error) (*streamAccumulator, error) {
	timer := l.core.Metrics().LLMRequestTimer("chat")
	defer timer.ObserveDuration()

	stream, err := l.core.AI().ChatStream(l.ctx, messages, tools)
	if err != nil {
		l.core.Metrics().LLMErrorInc("chat")
		return nil, errors.New("ChatLogic.streamOneTurn.ChatStream", errors.ERROR_INTERNAL, err)
	}
	defer stream.Close()

	acc := &streamAccumulator{}
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.core.Metrics().LLMErrorInc("chat_stream")
			return nil, errors.New("ChatLogic.streamOneTurn.Recv", errors.ERROR_INTERNAL, err)
		}

		delta := acc.push(resp)
		if delta != "" && onDelta != nil {
			if err = onDelta(delta); err != nil {
				return nil, errors.New("ChatLogic.streamOneTurn.onDelta", errors.ERROR_INTERNAL, err)
			}
		}
	}

	return acc, nil
}

// persistAssistantTurn 在流结束后一次性落库助手消息与其携带的工具调用。
// 只有工具调用而无文本时 content 记为 NULL。
func (l *ChatLogic) persistAssistantTurn(chatID string, turn *streamAccumulator) error {
	message := types.Message{
		ID:        utils.GenUniqIDStr(),
		ChatID:    chatID,
		Role:      types.MESSAGE_ROLE_ASSISTANT,
		CreatedAt: time.Now().Unix(),
	}
	if text := turn.Content(); text != "" || len(turn.toolCalls) == 0 {
		message.Content = &text
	}

	return l.core.Store().Transaction(l.ctx, func(ctx context.Context) error {
		if err := l.core.Store().MessageStore().Create(ctx, message); err != nil {
			return errors.New("ChatLogic.persistAssistantTurn.MessageStore.Create", errors.ERROR_INTERNAL, err)
		}
		for _, call := range turn.toolCalls {
			args := types.JSONB(call.Function.Arguments)
			if !json.Valid(args) {
				args = types.MustJSONB(map[string]string{"raw": call.Function.Arguments})
			}
			if err := l.core.Store().ToolCallStore().Create(ctx, types.ToolCall{
				ID:         utils.GenUniqIDStr(),
				MessageID:  message.ID,
				ToolCallID: call.ID,
				ToolName:   call.Function.Name,
				Args:       args,
			}); err != nil {
				return errors.New("ChatLogic.persistAssistantTurn.ToolCallStore.Create", errors.ERROR_INTERNAL, err)
			}
		}
		return nil
	})
}

// trimHistory 从最老的消息开始丢弃，直到token预算放得下，但始终保留
// 最后一条消息。估算失败时不裁剪。
func (l *ChatLogic) trimHistory(history []openai.ChatCompletionMessage) []openai.ChatCompletionMessage {
	limit := l.core.Cfg().Chat.HistoryTokenLimit
	model := l.core.Cfg().OpenAI.ChatModel
	if model == "" {
		model = openai.GPT4o
	}

	trimmed := history
	for len(trimmed) > 1 {
		count, err := ai.NumTokens(trimmed, model)
		if err != nil {
			slog.Warn("token estimate failed, skip history trimming", slog.String("error", err.Error()))
			return trimmed
		}
		if count <= limit {
			break
		}
		trimmed = trimmed[1:]
	}
	return trimmed
}
