package v1

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"github.com/memochat-ai/memochat/pkg/types"
)

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func deltaEvent(content string) openai.ChatCompletionStreamResponse {
	return openai.ChatCompletionStreamResponse{
		Choices: []openai.ChatCompletionStreamChoice{
			{Delta: openai.ChatCompletionStreamChoiceDelta{Content: content}},
		},
	}
}

func toolEvent(index int, id, name, args string) openai.ChatCompletionStreamResponse {
	return openai.ChatCompletionStreamResponse{
		Choices: []openai.ChatCompletionStreamChoice{
			{Delta: openai.ChatCompletionStreamChoiceDelta{
				ToolCalls: []openai.ToolCall{
					{
						Index:    intPtr(index),
						ID:       id,
						Type:     openai.ToolTypeFunction,
						Function: openai.FunctionCall{Name: name, Arguments: args},
					},
				},
			}},
		},
	}
}

func TestStreamAccumulatorAssemblesContent(t *testing.T) {
	acc := &streamAccumulator{}

	assert.Equal(t, "Hello", acc.push(deltaEvent("Hello")))
	assert.Equal(t, ", world", acc.push(deltaEvent(", world")))
	acc.push(openai.ChatCompletionStreamResponse{
		Choices: []openai.ChatCompletionStreamChoice{{FinishReason: openai.FinishReasonStop}},
	})

	assert.Equal(t, "Hello, world", acc.Content())
	assert.Equal(t, openai.FinishReasonStop, acc.finish)
	assert.Empty(t, acc.toolCalls)
}

func TestStreamAccumulatorAssemblesToolCallFragments(t *testing.T) {
	acc := &streamAccumulator{}

	// arguments arrive split across events, id and name only on the first
	acc.push(toolEvent(0, "call_abc", "weather", ""))
	acc.push(toolEvent(0, "", "", `{"loca`))
	acc.push(toolEvent(0, "", "", `tion":"Paris"}`))

	assert.Len(t, acc.toolCalls, 1)
	assert.Equal(t, "call_abc", acc.toolCalls[0].ID)
	assert.Equal(t, "weather", acc.toolCalls[0].Function.Name)
	assert.Equal(t, `{"location":"Paris"}`, acc.toolCalls[0].Function.Arguments)
}

func TestStreamAccumulatorInterleavedToolCalls(t *testing.T) {
	acc := &streamAccumulator{}

	acc.push(toolEvent(0, "call_1", "weather", `{"location":`))
	acc.push(toolEvent(1, "call_2", "calculateTime", `{"timezone":`))
	acc.push(toolEvent(0, "", "", `"Paris"}`))
	acc.push(toolEvent(1, "", "", `"Europe/Paris"}`))

	assert.Len(t, acc.toolCalls, 2)
	assert.Equal(t, "call_1", acc.toolCalls[0].ID)
	assert.Equal(t, `{"location":"Paris"}`, acc.toolCalls[0].Function.Arguments)
	assert.Equal(t, "call_2", acc.toolCalls[1].ID)
	assert.Equal(t, `{"timezone":"Europe/Paris"}`, acc.toolCalls[1].Function.Arguments)
}

func TestStreamAccumulatorMixedTextAndToolCall(t *testing.T) {
	acc := &streamAccumulator{}

	acc.push(deltaEvent("Let me check."))
	acc.push(toolEvent(0, "call_9", "getInformation", `{"question":"favorite color"}`))

	assert.Equal(t, "Let me check.", acc.Content())
	assert.Len(t, acc.toolCalls, 1)
}

func TestAssistantMessageContentNullability(t *testing.T) {
	// pure tool-call turns persist NULL content, text turns keep their text
	withText := types.Message{Content: strPtr("answer")}
	assert.NotNil(t, withText.Content)

	acc := &streamAccumulator{}
	acc.push(toolEvent(0, "call_1", "weather", `{}`))
	assert.Equal(t, "", acc.Content())
}
