package ai

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
	openai "github.com/sashabaranov/go-openai"
)

const (
	tokensPerMessage = 3
	tokensPerReply   = 3
)

// NumTokens estimates the prompt token count for a message list, used to trim
// history before invoking the provider.
func NumTokens(messages []openai.ChatCompletionMessage, model string) (int, error) {
	tkm, err := tiktoken.EncodingForModel(model)
	if err != nil {
		if tkm, err = tiktoken.GetEncoding("cl100k_base"); err != nil {
			return 0, fmt.Errorf("failed to get tiktoken encoding, %w", err)
		}
	}

	var num int
	for _, message := range messages {
		num += tokensPerMessage
		num += len(tkm.Encode(message.Role, nil, nil))
		num += len(tkm.Encode(message.Content, nil, nil))
	}
	num += tokensPerReply
	return num, nil
}
