package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/memochat-ai/memochat/app/core"
	"github.com/memochat-ai/memochat/pkg/safe"
	"github.com/memochat-ai/memochat/pkg/types"
	"github.com/memochat-ai/memochat/pkg/utils"
)

type ToolName string

const (
	TOOL_WEATHER             ToolName = "weather"
	TOOL_CONVERT_TEMPERATURE ToolName = "convertTemperature"
	TOOL_CALCULATE_TIME      ToolName = "calculateTime"
	TOOL_ADD_RESOURCE        ToolName = "addResource"
	TOOL_GET_INFORMATION     ToolName = "getInformation"
	TOOL_DATABASE            ToolName = "databaseTool"
)

const (
	UNIT_CELSIUS    = "celsius"
	UNIT_FAHRENHEIT = "fahrenheit"
)

// ToolHandler 一个具名能力：描述与参数结构交给模型，Execute 在服务端运行。
type ToolHandler struct {
	Name        ToolName
	Description string
	Parameters  *jsonschema.Definition
	Execute     func(ctx context.Context, args json.RawMessage) (any, error)
}

// ToolRegistry 固定的工具表。注册集在构造时封闭，运行期只读。
type ToolRegistry struct {
	core     *core.Core
	handlers map[ToolName]*ToolHandler
	order    []ToolName
}

func NewToolRegistry(core *core.Core, resource *ResourceLogic, query *QueryLogic) *ToolRegistry {
	r := &ToolRegistry{
		core:     core,
		handlers: make(map[ToolName]*ToolHandler),
	}

	r.register(weatherTool())
	r.register(convertTemperatureTool())
	r.register(calculateTimeTool())
	r.register(addResourceTool(resource))
	r.register(getInformationTool(resource))
	r.register(databaseTool(query))

	return r
}

func (r *ToolRegistry) register(handler *ToolHandler) {
	r.handlers[handler.Name] = handler
	r.order = append(r.order, handler.Name)
}

// Definitions 以注册顺序导出给模型的工具声明。
func (r *ToolRegistry) Definitions() []openai.Tool {
	return lo.Map(r.order, func(name ToolName, _ int) openai.Tool {
		handler := r.handlers[name]
		return openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        string(handler.Name),
				Description: handler.Description,
				Parameters:  handler.Parameters,
			},
		}
	})
}

// Dispatch 执行一次工具调用。任何失败（未知工具、参数不合法、执行出错、
// panic）都折叠成 {"error": ...} 结果返回给模型，绝不中断整轮对话。
func (r *ToolRegistry) Dispatch(ctx context.Context, name string, rawArgs string) types.JSONB {
	handler, exist := r.handlers[ToolName(name)]
	if !exist {
		r.core.Metrics().ToolErrorInc(name)
		return errorPayload(fmt.Sprintf("unknown tool: %s", name))
	}

	timer := r.core.Metrics().ToolDispatchTimer(name)
	defer timer.ObserveDuration()

	var (
		result  any
		execErr error
	)
	recovered := safe.Do(func() {
		result, execErr = handler.Execute(ctx, json.RawMessage(rawArgs))
	})
	if recovered != nil {
		execErr = fmt.Errorf("tool panicked: %v", recovered)
	}
	if execErr != nil {
		slog.Error("tool execution failed",
			slog.String("tool", name),
			slog.String("error", execErr.Error()))
		r.core.Metrics().ToolErrorInc(name)
		return errorPayload(execErr.Error())
	}

	payload, err := types.NewJSONB(result)
	if err != nil {
		r.core.Metrics().ToolErrorInc(name)
		return errorPayload("tool returned unserializable result")
	}
	return payload
}

func errorPayload(msg string) types.JSONB {
	return types.MustJSONB(map[string]string{"error": msg})
}

func weatherTool() *ToolHandler {
	return &ToolHandler{
		Name:        TOOL_WEATHER,
		Description: "Get the weather in a location (fahrenheit)",
		Parameters: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"location": {
					Type:        jsonschema.String,
					Description: "The location to get the weather for",
				},
			},
			Required: []string{"location"},
		},
		Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				Location string `json:"location"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			return map[string]any{
				"location":    params.Location,
				"temperature": utils.Random(32, 90),
				"unit":        UNIT_FAHRENHEIT,
			}, nil
		},
	}
}

func convertTemperatureTool() *ToolHandler {
	return &ToolHandler{
		Name:        TOOL_CONVERT_TEMPERATURE,
		Description: "Convert temperature between Celsius and Fahrenheit",
		Parameters: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"value": {
					Type:        jsonschema.Number,
					Description: "The temperature value to convert",
				},
				"from": {
					Type:        jsonschema.String,
					Enum:        []string{UNIT_CELSIUS, UNIT_FAHRENHEIT},
					Description: "Source unit",
				},
				"to": {
					Type:        jsonschema.String,
					Enum:        []string{UNIT_CELSIUS, UNIT_FAHRENHEIT},
					Description: "Target unit",
				},
			},
			Required: []string{"value", "from", "to"},
		},
		Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				Value float64 `json:"value"`
				From  string  `json:"from"`
				To    string  `json:"to"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			value, unit, err := ConvertTemperature(params.Value, params.From, params.To)
			if err != nil {
				return nil, err
			}
			return map[string]any{
				"value": value,
				"unit":  unit,
			}, nil
		},
	}
}

// ConvertTemperature 精确线性换算，保留一位小数。同单位原样返回。
func ConvertTemperature(value float64, from, to string) (float64, string, error) {
	if !isTemperatureUnit(from) || !isTemperatureUnit(to) {
		return 0, "", fmt.Errorf("unsupported unit, want %s or %s", UNIT_CELSIUS, UNIT_FAHRENHEIT)
	}
	if from == to {
		return value, to, nil
	}

	var result float64
	if from == UNIT_FAHRENHEIT {
		result = (value - 32) * 5 / 9
	} else {
		result = value*9/5 + 32
	}
	return math.Round(result*10) / 10, to, nil
}

func isTemperatureUnit(unit string) bool {
	return unit == UNIT_CELSIUS || unit == UNIT_FAHRENHEIT
}

func calculateTimeTool() *ToolHandler {
	return &ToolHandler{
		Name:        TOOL_CALCULATE_TIME,
		Description: "Calculate time in different timezones",
		Parameters: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"timezone": {
					Type:        jsonschema.String,
					Description: "Target timezone",
				},
			},
			Required: []string{"timezone"},
		},
		Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				Timezone string `json:"timezone"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			loc, err := time.LoadLocation(params.Timezone)
			if err != nil {
				return nil, fmt.Errorf("unknown timezone %q", params.Timezone)
			}
			return map[string]any{
				"timezone": params.Timezone,
				"time":     time.Now().In(loc).Format("1/2/2006, 3:04:05 PM"),
			}, nil
		},
	}
}

func addResourceTool(resource *ResourceLogic) *ToolHandler {
	return &ToolHandler{
		Name:        TOOL_ADD_RESOURCE,
		Description: "Save memories, preferences, or personal information shared during conversations.",
		Parameters: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"content": {
					Type:        jsonschema.String,
					Description: "The memory or information to remember about the user",
				},
			},
			Required: []string{"content"},
		},
		Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				Content string `json:"content"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			outcome, ok := resource.CreateResource(params.Content)
			message := "Memory saved successfully"
			if !ok {
				message = "Failed to save memory"
			}
			return map[string]any{
				"success": ok,
				"message": message,
				"result":  outcome,
			}, nil
		},
	}
}

func getInformationTool(resource *ResourceLogic) *ToolHandler {
	return &ToolHandler{
		Name: TOOL_GET_INFORMATION,
		Description: "Access your memories about the user. Use this to recall information, preferences, or details " +
			"that were previously shared in conversations. This is like remembering things about a friend. " +
			"Always check these memories first when asked personal questions about the user.",
		Parameters: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"question": {
					Type:        jsonschema.String,
					Description: "What you want to remember about the user",
				},
			},
			Required: []string{"question"},
		},
		Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				Question string `json:"question"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			return resource.SearchMemory(params.Question)
		},
	}
}

func databaseTool(query *QueryLogic) *ToolHandler {
	return &ToolHandler{
		Name: TOOL_DATABASE,
		Description: "Generate SQL queries and retrieve data about unicorn companies. Use this when users ask " +
			"questions about valuations, industries, locations, or trends related to unicorn companies in the " +
			"database. Returns both the generated query and its results.",
		Parameters: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"question": {
					Type:        jsonschema.String,
					Description: "the question about unicorn company data",
				},
			},
			Required: []string{"question"},
		},
		Execute: func(ctx context.Context, args json.RawMessage) (any, error) {
			var params struct {
				Question string `json:"question"`
			}
			if err := json.Unmarshal(args, &params); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
			return query.GenerateAndRun(params.Question)
		},
	}
}
