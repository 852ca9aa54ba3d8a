package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/memochat-ai/memochat/pkg/ai"
)

const (
	NAME = "openai"

	GenerateQueryFuncName = "generate_query"
)

type ModelName struct {
	ChatModel      string
	SQLModel       string
	EmbeddingModel string
}

type Driver struct {
	client *openai.Client
	model  ModelName
}

func NewClient(token, proxy string) *openai.Client {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	return openai.NewClientWithConfig(cfg)
}

func New(token, proxy string, model ModelName) *Driver {
	if model.ChatModel == "" {
		model.ChatModel = openai.GPT4o
	}
	if model.SQLModel == "" {
		model.SQLModel = openai.GPT3Dot5Turbo
	}
	if model.EmbeddingModel == "" {
		model.EmbeddingModel = string(openai.AdaEmbeddingV2)
	}

	return &Driver{
		client: NewClient(token, proxy),
		model:  model,
	}
}

// EmbedDocuments embeds a batch of chunks. Results keep input order, provider
// errors surface unmodified so the caller decides whether to retry.
func (s *Driver) EmbedDocuments(ctx context.Context, content []string) (ai.EmbeddingResult, error) {
	slog.Debug("EmbedDocuments", slog.String("driver", NAME), slog.Int("chunks", len(content)))
	queryReq := openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(s.model.EmbeddingModel),
	}

	var (
		groups   [][]string
		result   [][]float32
		batchMax = 6
	)

	for i, v := range content {
		if i%batchMax == 0 {
			groups = append(groups, []string{})
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], v)
	}

	r := ai.EmbeddingResult{
		Usage: &openai.Usage{},
	}
	for _, v := range groups {
		queryReq.Input = v
		resp, err := s.client.CreateEmbeddings(ctx, queryReq)
		if err != nil {
			return r, fmt.Errorf("Error creating embedding: %w", err)
		}
		for _, item := range resp.Data {
			result = append(result, item.Embedding)
		}

		r.Usage.CompletionTokens += resp.Usage.CompletionTokens
		r.Usage.PromptTokens += resp.Usage.PromptTokens
		r.Usage.TotalTokens += resp.Usage.TotalTokens
		r.Model = string(resp.Model)
	}

	r.Data = result

	return r, nil
}

// EmbedQuery embeds a single search query after escape-sequence normalization.
func (s *Driver) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	slog.Debug("EmbedQuery", slog.String("driver", NAME))
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(s.model.EmbeddingModel),
		Input: []string{ai.NormalizeQuery(text)},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contains no data")
	}
	return resp.Data[0].Embedding, nil
}

func (s *Driver) ChatStream(ctx context.Context, messages []openai.ChatCompletionMessage, tools []openai.Tool) (ai.ChatStream, error) {
	req := openai.ChatCompletionRequest{
		Model:    s.model.ChatModel,
		Stream:   true,
		Messages: messages,
		Tools:    tools,
		StreamOptions: &openai.StreamOptions{
			IncludeUsage: true,
		},
	}

	resp, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Completion error: %w", err)
	}

	slog.Debug("ChatStream", slog.String("driver", NAME), slog.String("model", s.model.ChatModel), slog.Int("tools", len(tools)))

	return resp, nil
}

// GenerateSQL asks the model to emit exactly one structured field: the
// retrieval query for the unicorns dataset. The result is NOT trusted; callers
// must pass it through sqlguard before execution.
func (s *Driver) GenerateSQL(ctx context.Context, question string) (string, error) {
	slog.Debug("GenerateSQL", slog.String("driver", NAME))
	params := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"query": {
				Type:        jsonschema.String,
				Description: "The postgres retrieval query that answers the user's question.",
			},
		},
		Required: []string{"query"},
	}

	f := openai.FunctionDefinition{
		Name:        GenerateQueryFuncName,
		Description: "Emit the SQL retrieval query for the user's question.",
		Parameters:  params,
	}
	t := openai.Tool{
		Type:     openai.ToolTypeFunction,
		Function: &f,
	}

	dialogue := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: ai.PROMPT_GENERATE_SQL_EN},
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Generate the query necessary to retrieve the data the user wants: %s", question)},
	}

	resp, err := s.client.CreateChatCompletion(ctx,
		openai.ChatCompletionRequest{
			Model:    s.model.SQLModel,
			Messages: dialogue,
			Tools:    []openai.Tool{t},
			ToolChoice: openai.ToolChoice{
				Type:     openai.ToolTypeFunction,
				Function: openai.ToolFunction{Name: GenerateQueryFuncName},
			},
		},
	)
	if err != nil || len(resp.Choices) != 1 {
		return "", fmt.Errorf("Completion error: err:%v len(choices):%v", err, len(resp.Choices))
	}

	var payload struct {
		Query string `json:"query"`
	}
	for _, v := range resp.Choices[0].Message.ToolCalls {
		if v.Function.Name != GenerateQueryFuncName {
			continue
		}
		if err = json.Unmarshal([]byte(v.Function.Arguments), &payload); err != nil {
			return "", fmt.Errorf("failed to unmarshal func call arguments of %s, %w", GenerateQueryFuncName, err)
		}
	}

	if payload.Query == "" {
		return "", fmt.Errorf("model did not produce a query")
	}
	return payload.Query, nil
}
