package ai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingResult carries the vectors for a batch of chunks, same order and
// count as the input.
type EmbeddingResult struct {
	Model string
	Data  [][]float32
	Usage *openai.Usage
}

// ChatStream is the minimal surface the orchestrator consumes. Faked in tests.
type ChatStream interface {
	Recv() (openai.ChatCompletionStreamResponse, error)
	Close() error
}

type ChatAI interface {
	ChatStream(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (ChatStream, error)
}

type Embedder interface {
	EmbedDocuments(ctx context.Context, content []string) (EmbeddingResult, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

type SQLGenerator interface {
	GenerateSQL(ctx context.Context, question string) (string, error)
}

// Driver is the single bound provider behind chat, embedding and NL-to-SQL.
type Driver interface {
	ChatAI
	Embedder
	SQLGenerator
}

// NormalizeQuery replaces literal newline escape sequences with spaces before
// query embedding. Provider-specific normalization, real newlines stay as-is.
func NormalizeQuery(text string) string {
	return strings.ReplaceAll(text, `\n`, " ")
}
