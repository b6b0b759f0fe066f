package ragqa

import "rag-agent-connector/internal/common/validation"

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"question", "llmApiKey"},
		Properties: map[string]validation.Property{
			"agentUrl": {
				Type:        "string",
				Description: "Endpoint of the agent service; falls back to connector configuration when omitted",
			},
			"authToken": {
				Type:        "string",
				Description: "Bearer token for the agent service",
			},
			"question": {
				Type:        "string",
				Description: "Natural-language question to answer",
				MinLength:   intPtr(1),
			},
			"llmApiKey": {
				Type:        "string",
				Description: "API key forwarded to the agent for its LLM calls",
				MinLength:   intPtr(1),
			},
			"llmModel": {
				Type:        "string",
				Description: "LLM model identifier",
				Default:     DefaultLLMModel,
			},
			"topK": {
				Type:        "integer",
				Description: "Number of passages to retrieve",
				Default:     DefaultTopK,
				Minimum:     floatPtr(MinTopK),
				Maximum:     floatPtr(MaxTopK),
			},
			"minConfidence": {
				Type:        "number",
				Description: "Confidence threshold below which the agent reports low_confidence",
				Default:     DefaultMinConfidence,
				Minimum:     floatPtr(MinConfidenceBound),
				Maximum:     floatPtr(MaxConfidenceBound),
			},
			"requireSources": {
				Type:        "boolean",
				Description: "Whether the agent must ground its answer in retrieved sources",
				Default:     DefaultRequireSources,
			},
			"timeoutMs": {
				Type:        "integer",
				Description: "Per-call timeout in milliseconds",
				Default:     DefaultTimeoutMs,
				Minimum:     floatPtr(MinTimeoutMs),
				Maximum:     floatPtr(MaxTimeoutMs),
			},
			"maxTokens": {
				Type:        "integer",
				Description: "Completion token budget",
				Default:     DefaultMaxTokens,
				Minimum:     floatPtr(MinMaxTokens),
				Maximum:     floatPtr(MaxMaxTokens),
			},
			"temperature": {
				Type:        "number",
				Description: "Sampling temperature",
				Default:     DefaultTemperature,
				Minimum:     floatPtr(MinTemperature),
				Maximum:     floatPtr(MaxTemperature),
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"status"},
		Properties: map[string]validation.Property{
			"status": {
				Type:        "string",
				Description: "Outcome of the call",
				Enum:        []string{StatusOK, StatusLowConfidence, StatusError},
			},
			"answer": {
				Type:        "string",
				Description: "Answer text",
			},
			"sources": {
				Type:        "array",
				Description: "Passages the answer is grounded on",
				Items:       &validation.Property{Type: "object"},
			},
			"confidence": {
				Type:        "number",
				Description: "Agent-reported confidence",
			},
			"reasoning": {
				Type:        "string",
				Description: "Agent-reported reasoning trace",
			},
			"errorCode": {
				Type:        "string",
				Description: "Machine-readable code when status is error",
			},
			"errorMessage": {
				Type:        "string",
				Description: "Human-readable message when status is error",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}

func floatPtr(f float64) *float64 {
	return &f
}
