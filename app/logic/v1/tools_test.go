package v1

import (
	"testing"

	"github.com/samber/lo"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestConvertTemperature(t *testing.T) {
	value, unit, err := ConvertTemperature(100, UNIT_CELSIUS, UNIT_FAHRENHEIT)
	assert.NoError(t, err)
	assert.Equal(t, 212.0, value)
	assert.Equal(t, UNIT_FAHRENHEIT, unit)

	value, unit, err = ConvertTemperature(32, UNIT_FAHRENHEIT, UNIT_CELSIUS)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, value)
	assert.Equal(t, UNIT_CELSIUS, unit)
}

func TestConvertTemperatureRounding(t *testing.T) {
	value, _, err := ConvertTemperature(100, UNIT_FAHRENHEIT, UNIT_CELSIUS)
	assert.NoError(t, err)
	assert.Equal(t, 37.8, value)
}

func TestConvertTemperatureIdentity(t *testing.T) {
	value, unit, err := ConvertTemperature(55.5, UNIT_FAHRENHEIT, UNIT_FAHRENHEIT)
	assert.NoError(t, err)
	assert.Equal(t, 55.5, value)
	assert.Equal(t, UNIT_FAHRENHEIT, unit)
}

func TestConvertTemperatureUnknownUnit(t *testing.T) {
	_, _, err := ConvertTemperature(10, "kelvin", UNIT_CELSIUS)
	assert.Error(t, err)
}

func TestToolRegistryDefinitions(t *testing.T) {
	registry := NewToolRegistry(nil, nil, nil)
	defs := registry.Definitions()
	assert.Len(t, defs, 6)

	names := lo.Map(defs, func(item openai.Tool, _ int) string {
		return item.Function.Name
	})
	assert.Equal(t, []string{
		"weather",
		"convertTemperature",
		"calculateTime",
		"addResource",
		"getInformation",
		"databaseTool",
	}, names)

	for _, def := range defs {
		assert.Equal(t, openai.ToolTypeFunction, def.Type)
		assert.NotEmpty(t, def.Function.Description)
		assert.NotNil(t, def.Function.Parameters)
	}
}
