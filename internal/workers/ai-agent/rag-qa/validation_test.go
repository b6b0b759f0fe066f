// internal/workers/ai-agent/rag-qa/validation_test.go
package ragqa

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rag-agent-connector/internal/common/params"
)

func testConfig() *Config {
	return &Config{
		AgentURL:  "http://localhost:8000/run",
		TimeoutMs: DefaultTimeoutMs,
	}
}

func minimalVariables() params.Bag {
	return params.Bag{
		KeyQuestion:  "What is the refund policy?",
		KeyLLMApiKey: "sk-test",
	}
}

func TestValidateInput_MinimalValid(t *testing.T) {
	result := ValidateInput(minimalVariables(), testConfig())

	assert.True(t, result.Valid())
	assert.Empty(t, result.Error())
}

func TestValidateInput_AllParametersValid(t *testing.T) {
	bag := params.Bag{
		KeyAgentURL:       "https://agent.internal:8443/run",
		KeyAuthToken:      "token-123",
		KeyQuestion:       "How long does onboarding take?",
		KeyLLMApiKey:      "sk-test",
		KeyLLMModel:       "gpt-4o",
		KeyTopK:           float64(5),
		KeyMinConfidence:  0.4,
		KeyRequireSources: false,
		KeyTimeoutMs:      float64(15000),
		KeyMaxTokens:      float64(1200),
		KeyTemperature:    0.7,
	}

	result := ValidateInput(bag, testConfig())

	assert.True(t, result.Valid())
}

func TestValidateInput_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		bag   params.Bag
		field string
	}{
		{"missing question", params.Bag{KeyLLMApiKey: "sk-test"}, KeyQuestion},
		{"blank question", params.Bag{KeyQuestion: "   ", KeyLLMApiKey: "sk-test"}, KeyQuestion},
		{"missing api key", params.Bag{KeyQuestion: "test?"}, KeyLLMApiKey},
		{"blank api key", params.Bag{KeyQuestion: "test?", KeyLLMApiKey: ""}, KeyLLMApiKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateInput(tt.bag, testConfig())

			assert.False(t, result.Valid())
			assert.Contains(t, result.Error(), tt.field)
			assert.Contains(t, result.Error(), "mandatory parameter is missing")
		})
	}
}

func TestValidateInput_AgentURL(t *testing.T) {
	tests := []struct {
		name      string
		bag       params.Bag
		configURL string
		wantValid bool
	}{
		{"falls back to config default", minimalVariables(), "http://localhost:8000/run", true},
		{"no variable and no config", minimalVariables(), "", false},
		{
			"relative URL rejected",
			params.Bag{KeyAgentURL: "localhost/run", KeyQuestion: "q", KeyLLMApiKey: "k"},
			"", false,
		},
		{
			"scheme without host rejected",
			params.Bag{KeyAgentURL: "http://", KeyQuestion: "q", KeyLLMApiKey: "k"},
			"", false,
		},
		{
			"variable overrides empty config",
			params.Bag{KeyAgentURL: "https://agent.example.com/run", KeyQuestion: "q", KeyLLMApiKey: "k"},
			"", true,
		},
		{
			"non-string rejected",
			params.Bag{KeyAgentURL: 42, KeyQuestion: "q", KeyLLMApiKey: "k"},
			"http://localhost:8000/run", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.AgentURL = tt.configURL

			result := ValidateInput(tt.bag, cfg)

			assert.Equal(t, tt.wantValid, result.Valid(), "violations: %s", result.Error())
		})
	}
}

func TestValidateInput_TypeErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"question as number", KeyQuestion, 42.0},
		{"topK as string", KeyTopK, "three"},
		{"topK fractional", KeyTopK, 2.5},
		{"requireSources as string", KeyRequireSources, "yes"},
		{"minConfidence as string", KeyMinConfidence, "high"},
		{"authToken as number", KeyAuthToken, 1.0},
		{"llmModel as bool", KeyLLMModel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := minimalVariables()
			bag[tt.key] = tt.value

			result := ValidateInput(bag, testConfig())

			assert.False(t, result.Valid())
			assert.Contains(t, result.Error(), tt.key)
		})
	}
}

func TestValidateInput_RangeViolations(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"topK below minimum", KeyTopK, float64(0)},
		{"topK above maximum", KeyTopK, float64(15)},
		{"minConfidence negative", KeyMinConfidence, -0.1},
		{"minConfidence above one", KeyMinConfidence, 1.5},
		{"timeoutMs too small", KeyTimeoutMs, float64(500)},
		{"timeoutMs too large", KeyTimeoutMs, float64(600000)},
		{"maxTokens too small", KeyMaxTokens, float64(50)},
		{"maxTokens too large", KeyMaxTokens, float64(8000)},
		{"temperature negative", KeyTemperature, -0.5},
		{"temperature above two", KeyTemperature, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := minimalVariables()
			bag[tt.key] = tt.value

			result := ValidateInput(bag, testConfig())

			assert.False(t, result.Valid())
			assert.Contains(t, result.Error(), tt.key)
			assert.Contains(t, result.Error(), "must be between")
		})
	}
}

func TestValidateInput_BoundaryValuesAccepted(t *testing.T) {
	bag := minimalVariables()
	bag[KeyTopK] = float64(MinTopK)
	bag[KeyMinConfidence] = MaxConfidenceBound
	bag[KeyTimeoutMs] = float64(MaxTimeoutMs)
	bag[KeyMaxTokens] = float64(MinMaxTokens)
	bag[KeyTemperature] = MinTemperature

	result := ValidateInput(bag, testConfig())

	assert.True(t, result.Valid(), "violations: %s", result.Error())
}

func TestValidateInput_WholeFloatReadsAsInt(t *testing.T) {
	// JSON numbers always decode as float64; 5.0 must count as integer 5.
	bag := minimalVariables()
	bag[KeyTopK] = 5.0

	result := ValidateInput(bag, testConfig())

	assert.True(t, result.Valid(), "violations: %s", result.Error())
}

func TestValidateInput_AggregatesAllViolations(t *testing.T) {
	bag := params.Bag{
		KeyTopK:        float64(15),
		KeyTemperature: 3.0,
	}
	cfg := testConfig()
	cfg.AgentURL = ""

	result := ValidateInput(bag, cfg)

	assert.False(t, result.Valid())
	assert.Len(t, result.Errors, 5) // agentUrl, question, llmApiKey, topK, temperature

	msg := result.Error()
	for _, field := range []string{KeyAgentURL, KeyQuestion, KeyLLMApiKey, KeyTopK, KeyTemperature} {
		assert.Contains(t, msg, field)
	}
}

func TestValidateInput_OptionalEmptyStringsAllowed(t *testing.T) {
	bag := minimalVariables()
	bag[KeyAuthToken] = ""
	bag[KeyLLMModel] = ""

	result := ValidateInput(bag, testConfig())

	assert.True(t, result.Valid())
}
