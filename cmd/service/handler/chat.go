package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"

	v1 "github.com/memochat-ai/memochat/app/logic/v1"
	"github.com/memochat-ai/memochat/app/response"
	"github.com/memochat-ai/memochat/pkg/errors"
)

type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content"`
}

type ChatRequest struct {
	ChatID   string        `json:"chat_id"`
	Messages []ChatMessage `json:"messages" binding:"required"`
}

// Chat 接收整段会话历史，流式返回助手回复。响应体固定为 text/event-stream，
// 失败时返回 500 {"error":"Internal Server Error"}。
func (s *HttpSrv) Chat(c *gin.Context) {
	timer := s.Core.Metrics().ApiResponseTimer("/api/chat")
	defer timer.ObserveDuration()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		s.Core.Metrics().ApiErrorInc(http.MethodPost, "/api/chat", http.StatusBadRequest)
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.ERROR_INVALIDARGUMENT})
		return
	}

	messages := lo.FilterMap(req.Messages, func(item ChatMessage, _ int) (openai.ChatCompletionMessage, bool) {
		if item.Role != openai.ChatMessageRoleUser && item.Role != openai.ChatMessageRoleAssistant {
			return openai.ChatCompletionMessage{}, false
		}
		return openai.ChatCompletionMessage{
			Role:    item.Role,
			Content: item.Content,
		}, true
	})
	if len(messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.ERROR_INVALIDARGUMENT})
		return
	}

	var streamed bool
	err := v1.NewChatLogic(c, s.Core).HandleChatRequest(req.ChatID, messages, func(delta string) error {
		if !streamed {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			streamed = true
		}
		c.SSEvent("message", delta)
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		slog.Error("chat request failed", slog.String("error", err.Error()))
		s.Core.Metrics().ApiErrorInc(http.MethodPost, "/api/chat", http.StatusInternalServerError)
		// 流已经开始的情况下只能以事件形式告知失败
		if streamed {
			c.SSEvent("error", errors.ERROR_INTERNAL)
			c.Writer.Flush()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errors.ERROR_INTERNAL})
		return
	}

	if streamed {
		c.SSEvent("done", "")
		c.Writer.Flush()
	}
}

// ChatHistory 返回某个会话的全部消息与工具调用记录。
func (s *HttpSrv) ChatHistory(c *gin.Context) {
	chatID, _ := c.Params.Get("chatid")
	if chatID == "" {
		response.APIError(c, errors.New("handler.ChatHistory", errors.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest))
		return
	}

	details, err := v1.NewChatLogic(c, s.Core).GetChatHistory(chatID)
	if err != nil {
		response.APIError(c, err)
		return
	}

	response.APISuccess(c, details)
}
