// internal/workers/ai-agent/rag-qa/request.go
package ragqa

import (
	"encoding/json"
	"strings"
)

// Fixed task type in the agent API contract.
const TaskRagQA = "rag_qa"

// Defaults applied for omitted optional parameters.
const (
	DefaultLLMModel       = "gpt-4o-mini"
	DefaultTopK           = 3
	DefaultMinConfidence  = 0.0
	DefaultRequireSources = true
	DefaultTemperature    = 0.1
	DefaultTimeoutMs      = 30000
	DefaultMaxTokens      = 700
)

// AgentRequest is the canonical request to the RAG agent, built once per
// invocation and never mutated afterwards.
type AgentRequest struct {
	Question       string
	TopK           int
	MinConfidence  float64
	RequireSources bool
	LLMApiURL      string
	LLMApiKey      string
	LLMModel       string
	Temperature    float64
	TimeoutMs      int
	MaxTokens      int
}

// NewAgentRequest builds a request from validated input, applying the
// documented default for every omitted optional parameter.
func NewAgentRequest(in *Input, llmApiURL string) *AgentRequest {
	req := &AgentRequest{
		Question:       strings.TrimSpace(in.Question),
		TopK:           DefaultTopK,
		MinConfidence:  DefaultMinConfidence,
		RequireSources: DefaultRequireSources,
		LLMApiURL:      llmApiURL,
		LLMApiKey:      in.LLMApiKey,
		LLMModel:       DefaultLLMModel,
		Temperature:    DefaultTemperature,
		TimeoutMs:      DefaultTimeoutMs,
		MaxTokens:      DefaultMaxTokens,
	}

	if strings.TrimSpace(in.LLMModel) != "" {
		req.LLMModel = in.LLMModel
	}
	if in.TopK != nil {
		req.TopK = *in.TopK
	}
	if in.MinConfidence != nil {
		req.MinConfidence = *in.MinConfidence
	}
	if in.RequireSources != nil {
		req.RequireSources = *in.RequireSources
	}
	if in.Temperature != nil {
		req.Temperature = *in.Temperature
	}
	if in.TimeoutMs != nil {
		req.TimeoutMs = *in.TimeoutMs
	}
	if in.MaxTokens != nil {
		req.MaxTokens = *in.MaxTokens
	}

	return req
}

// Wire form. The agent API uses snake_case; llm_api_url is present iff
// non-blank after trimming.
type wireRequest struct {
	Task   string     `json:"task"`
	Input  wireInput  `json:"input"`
	Params wireParams `json:"params"`
}

type wireInput struct {
	Question string `json:"question"`
}

type wireParams struct {
	TopK           int     `json:"top_k"`
	MinConfidence  float64 `json:"min_confidence"`
	RequireSources bool    `json:"require_sources"`
	LLMApiKey      string  `json:"llm_api_key"`
	LLMModel       string  `json:"llm_model"`
	Temperature    float64 `json:"temperature"`
	TimeoutMs      int     `json:"timeout_ms"`
	MaxTokens      int     `json:"max_tokens"`
	LLMApiURL      string  `json:"llm_api_url,omitempty"`
}

func (r *AgentRequest) MarshalJSON() ([]byte, error) {
	wire := wireRequest{
		Task:  TaskRagQA,
		Input: wireInput{Question: r.Question},
		Params: wireParams{
			TopK:           r.TopK,
			MinConfidence:  r.MinConfidence,
			RequireSources: r.RequireSources,
			LLMApiKey:      r.LLMApiKey,
			LLMModel:       r.LLMModel,
			Temperature:    r.Temperature,
			TimeoutMs:      r.TimeoutMs,
			MaxTokens:      r.MaxTokens,
			LLMApiURL:      strings.TrimSpace(r.LLMApiURL),
		},
	}
	return json.Marshal(wire)
}

func (r *AgentRequest) UnmarshalJSON(data []byte) error {
	var wire wireRequest
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Question = wire.Input.Question
	r.TopK = wire.Params.TopK
	r.MinConfidence = wire.Params.MinConfidence
	r.RequireSources = wire.Params.RequireSources
	r.LLMApiKey = wire.Params.LLMApiKey
	r.LLMModel = wire.Params.LLMModel
	r.Temperature = wire.Params.Temperature
	r.TimeoutMs = wire.Params.TimeoutMs
	r.MaxTokens = wire.Params.MaxTokens
	r.LLMApiURL = wire.Params.LLMApiURL
	return nil
}

// String renders the request without the API key.
func (r *AgentRequest) String() string {
	b, _ := json.Marshal(map[string]interface{}{
		"question":        r.Question,
		"top_k":           r.TopK,
		"min_confidence":  r.MinConfidence,
		"require_sources": r.RequireSources,
		"llm_model":       r.LLMModel,
		"temperature":     r.Temperature,
		"timeout_ms":      r.TimeoutMs,
		"max_tokens":      r.MaxTokens,
	})
	return string(b)
}
