// internal/workers/ai-agent/rag-qa/models.go
package ragqa

import (
	"rag-agent-connector/internal/common/params"
)

// Input parameter names as they appear in process variables.
const (
	KeyAgentURL       = "agentUrl"
	KeyAuthToken      = "authToken"
	KeyQuestion       = "question"
	KeyLLMApiKey      = "llmApiKey"
	KeyLLMModel       = "llmModel"
	KeyTopK           = "topK"
	KeyMinConfidence  = "minConfidence"
	KeyRequireSources = "requireSources"
	KeyTimeoutMs      = "timeoutMs"
	KeyMaxTokens      = "maxTokens"
	KeyTemperature    = "temperature"
)

// Input is the typed view of the job variables after validation. Optional
// numeric parameters stay nil when the process did not supply them so the
// request builder can tell "absent" from an explicit zero.
type Input struct {
	AgentURL       string
	AuthToken      string
	Question       string
	LLMApiKey      string
	LLMModel       string
	TopK           *int
	MinConfidence  *float64
	RequireSources *bool
	TimeoutMs      *int
	MaxTokens      *int
	Temperature    *float64
}

// InputFromBag builds the typed input from validated job variables,
// falling back to the connector-level defaults for the endpoint identity.
func InputFromBag(bag params.Bag, cfg *Config) *Input {
	in := &Input{
		AgentURL:  cfg.AgentURL,
		AuthToken: cfg.AuthToken,
	}

	if s, ok := bag.String(KeyAgentURL); ok && s != "" {
		in.AgentURL = s
	}
	if s, ok := bag.String(KeyAuthToken); ok {
		in.AuthToken = s
	}
	if s, ok := bag.String(KeyQuestion); ok {
		in.Question = s
	}
	if s, ok := bag.String(KeyLLMApiKey); ok {
		in.LLMApiKey = s
	}
	if s, ok := bag.String(KeyLLMModel); ok {
		in.LLMModel = s
	}
	if v, ok := bag.Int(KeyTopK); ok {
		in.TopK = &v
	}
	if v, ok := bag.Float(KeyMinConfidence); ok {
		in.MinConfidence = &v
	}
	if v, ok := bag.Bool(KeyRequireSources); ok {
		in.RequireSources = &v
	}
	if v, ok := bag.Int(KeyTimeoutMs); ok {
		in.TimeoutMs = &v
	}
	if v, ok := bag.Int(KeyMaxTokens); ok {
		in.MaxTokens = &v
	}
	if v, ok := bag.Float(KeyTemperature); ok {
		in.Temperature = &v
	}

	return in
}

// Output is the named-output bag handed back to the process instance.
// On any failure path answer/reasoning are cleared, sources is empty and
// confidence is null, with status forced to "error".
type Output struct {
	Status       string                   `json:"status"`
	Answer       string                   `json:"answer"`
	Sources      []map[string]interface{} `json:"sources"`
	Confidence   *float64                 `json:"confidence"`
	Reasoning    string                   `json:"reasoning"`
	ErrorCode    string                   `json:"errorCode"`
	ErrorMessage string                   `json:"errorMessage"`
}

// OutputFromResponse maps a parsed agent response into process outputs.
func OutputFromResponse(resp *AgentResponse) *Output {
	if resp.IsError() {
		msg := resp.ErrorMessage
		if msg == "" {
			msg = resp.ErrorDetails
		}
		if msg == "" {
			msg = "Agent returned an error without a message"
		}
		return errorOutput(resp.ErrorCode, msg)
	}

	sources := resp.Sources
	if sources == nil {
		sources = []map[string]interface{}{}
	}

	return &Output{
		Status:     resp.Status,
		Answer:     resp.Answer,
		Sources:    sources,
		Confidence: resp.Confidence,
		Reasoning:  resp.Reasoning,
	}
}

func errorOutput(code, message string) *Output {
	return &Output{
		Status:       StatusError,
		Sources:      []map[string]interface{}{},
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
