// internal/workers/ai-agent/rag-qa/validation.go
package ragqa

import (
	"net/url"
	"strings"

	"rag-agent-connector/internal/common/params"
	"rag-agent-connector/internal/common/validation"
)

// Bounds the agent service accepts; enforced before any call goes out.
const (
	MinTopK = 1
	MaxTopK = 10

	MinConfidenceBound = 0.0
	MaxConfidenceBound = 1.0

	MinTimeoutMs = 1000
	MaxTimeoutMs = 300000

	MinMaxTokens = 100
	MaxMaxTokens = 4000

	MinTemperature = 0.0
	MaxTemperature = 2.0
)

// ValidateInput checks every rule and aggregates all violations; nothing
// is short-circuited so the process designer sees every problem at once.
// cfg supplies the endpoint defaults used when the variables omit them.
func ValidateInput(bag params.Bag, cfg *Config) *validation.Result {
	result := &validation.Result{}

	validateAgentURL(bag, cfg, result)
	validateQuestion(bag, result)
	validateLLMApiKey(bag, result)

	validateOptionalString(bag, KeyAuthToken, result)
	validateOptionalString(bag, KeyLLMModel, result)
	validateIntRange(bag, KeyTopK, MinTopK, MaxTopK, result)
	validateFloatRange(bag, KeyMinConfidence, MinConfidenceBound, MaxConfidenceBound, result)
	validateBool(bag, KeyRequireSources, result)
	validateIntRange(bag, KeyTimeoutMs, MinTimeoutMs, MaxTimeoutMs, result)
	validateIntRange(bag, KeyMaxTokens, MinMaxTokens, MaxMaxTokens, result)
	validateFloatRange(bag, KeyTemperature, MinTemperature, MaxTemperature, result)

	return result
}

func validateAgentURL(bag params.Bag, cfg *Config, result *validation.Result) {
	effective := cfg.AgentURL
	if bag.Has(KeyAgentURL) {
		s, ok := bag.String(KeyAgentURL)
		if !ok {
			result.Add(KeyAgentURL, "must be a string", "INVALID_TYPE")
			return
		}
		effective = s
	}

	effective = strings.TrimSpace(effective)
	if effective == "" {
		result.Add(KeyAgentURL,
			"mandatory parameter is missing; provide the agent API URL (e.g. http://localhost:8000/run)",
			"REQUIRED_FIELD_MISSING")
		return
	}

	u, err := url.Parse(effective)
	if err != nil || !u.IsAbs() || u.Host == "" {
		result.Addf(KeyAgentURL, "INVALID_URL", "is not a valid absolute URL: %s", effective)
	}
}

func validateQuestion(bag params.Bag, result *validation.Result) {
	v, present := bag.Get(KeyQuestion)
	if !present {
		result.Add(KeyQuestion,
			"mandatory parameter is missing; provide a question to ask the RAG agent",
			"REQUIRED_FIELD_MISSING")
		return
	}
	s, ok := v.(string)
	if !ok {
		result.Addf(KeyQuestion, "INVALID_TYPE", "must be a string, but received %T", v)
		return
	}
	if strings.TrimSpace(s) == "" {
		result.Add(KeyQuestion,
			"mandatory parameter is missing; provide a question to ask the RAG agent",
			"REQUIRED_FIELD_MISSING")
	}
}

func validateLLMApiKey(bag params.Bag, result *validation.Result) {
	v, present := bag.Get(KeyLLMApiKey)
	if !present {
		result.Add(KeyLLMApiKey,
			"mandatory parameter is missing; provide an OpenAI/Anthropic API key",
			"REQUIRED_FIELD_MISSING")
		return
	}
	s, ok := v.(string)
	if !ok {
		result.Addf(KeyLLMApiKey, "INVALID_TYPE", "must be a string, but received %T", v)
		return
	}
	if strings.TrimSpace(s) == "" {
		result.Add(KeyLLMApiKey,
			"mandatory parameter is missing; provide an OpenAI/Anthropic API key",
			"REQUIRED_FIELD_MISSING")
	}
}

// validateOptionalString allows absence and the empty string (for
// authToken the empty string means "no auth"), but flags non-string values.
func validateOptionalString(bag params.Bag, key string, result *validation.Result) {
	v, present := bag.Get(key)
	if !present {
		return
	}
	if _, ok := v.(string); !ok {
		result.Addf(key, "INVALID_TYPE", "must be a string, but received %T", v)
	}
}

func validateBool(bag params.Bag, key string, result *validation.Result) {
	v, present := bag.Get(key)
	if !present {
		return
	}
	if _, ok := v.(bool); !ok {
		result.Addf(key, "INVALID_TYPE", "must be a boolean, but received %T", v)
	}
}

func validateIntRange(bag params.Bag, key string, min, max int, result *validation.Result) {
	if !bag.Has(key) {
		return
	}
	value, ok := bag.Int(key)
	if !ok {
		raw, _ := bag.Get(key)
		result.Addf(key, "INVALID_TYPE", "must be an integer, but received %v", raw)
		return
	}
	if value < min || value > max {
		result.Addf(key, "RANGE_VIOLATION", "must be between %d and %d, but received %d", min, max, value)
	}
}

func validateFloatRange(bag params.Bag, key string, min, max float64, result *validation.Result) {
	if !bag.Has(key) {
		return
	}
	value, ok := bag.Float(key)
	if !ok {
		raw, _ := bag.Get(key)
		result.Addf(key, "INVALID_TYPE", "must be a number, but received %v", raw)
		return
	}
	if value < min || value > max {
		result.Addf(key, "RANGE_VIOLATION", "must be between %g and %g, but received %g", min, max, value)
	}
}
