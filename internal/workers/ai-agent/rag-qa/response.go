// internal/workers/ai-agent/rag-qa/response.go
package ragqa

import (
	"bytes"
	"encoding/json"
	"fmt"

	cerrors "rag-agent-connector/internal/common/errors"
)

// Response status values in the agent API contract.
const (
	StatusOK            = "ok"
	StatusLowConfidence = "low_confidence"
	StatusError         = "error"
)

// AgentResponse is the parsed agent reply, immutable after construction.
type AgentResponse struct {
	Status string

	// Success fields
	Answer     string
	Sources    []map[string]interface{}
	Confidence *float64
	Reasoning  string
	Usage      map[string]interface{}

	// Error fields
	ErrorCode    string
	ErrorMessage string
	ErrorDetails string
}

func (r *AgentResponse) IsError() bool {
	return r.Status == StatusError
}

func (r *AgentResponse) IsLowConfidence() bool {
	return r.Status == StatusLowConfidence
}

func (r *AgentResponse) IsSuccess() bool {
	return r.Status == StatusOK || r.Status == StatusLowConfidence
}

// NewErrorResponse builds an error-status response with the given code.
func NewErrorResponse(code cerrors.ErrorCode, message string) *AgentResponse {
	return &AgentResponse{
		Status:       StatusError,
		Sources:      []map[string]interface{}{},
		ErrorCode:    string(code),
		ErrorMessage: message,
	}
}

type wireEnvelope struct {
	Status string                 `json:"status"`
	Output json.RawMessage        `json:"output"`
	Usage  map[string]interface{} `json:"usage"`
	Error  json.RawMessage        `json:"error"`
}

type wireOutput struct {
	Answer     *string                  `json:"answer"`
	Sources    []map[string]interface{} `json:"sources"`
	Confidence *float64                 `json:"confidence"`
	Reasoning  *string                  `json:"reasoning"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// ParseResponse maps one HTTP response into an AgentResponse. Every
// malformed or error-shaped body is mapped, never raised: the caller only
// sees error-status responses.
//
// Non-2xx bodies are first tried as the agent's own envelope, since the
// agent is allowed to return its structured error with a matching HTTP
// status; only when that fails is a generic internal error synthesized.
func ParseResponse(httpStatus int, rawBody []byte) *AgentResponse {
	trimmed := bytes.TrimSpace(rawBody)

	if httpStatus >= 400 {
		if resp, ok := tryParseEnvelope(trimmed); ok {
			return resp
		}
		return NewErrorResponse(cerrors.ErrCodeInternal,
			fmt.Sprintf("HTTP %d: %s", httpStatus, string(rawBody)))
	}

	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return NewErrorResponse(cerrors.ErrCodeInternal, "Empty or null response from agent")
	}

	resp, ok := tryParseEnvelope(trimmed)
	if !ok {
		return NewErrorResponse(cerrors.ErrCodeInternal,
			fmt.Sprintf("Malformed JSON response from agent: %s", string(rawBody)))
	}
	return resp
}

// tryParseEnvelope decodes a top-level JSON object in the agent's
// response shape. ok is false when body is not a JSON object.
func tryParseEnvelope(trimmed []byte) (*AgentResponse, bool) {
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var env wireEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, false
	}

	resp := &AgentResponse{
		Status:  env.Status,
		Sources: []map[string]interface{}{},
		Usage:   env.Usage,
	}
	if resp.Status == "" {
		resp.Status = StatusOK
	}

	if isJSONObject(env.Output) {
		var out wireOutput
		if err := json.Unmarshal(env.Output, &out); err == nil {
			if out.Answer != nil {
				resp.Answer = *out.Answer
			}
			if out.Reasoning != nil {
				resp.Reasoning = *out.Reasoning
			}
			if out.Sources != nil {
				resp.Sources = out.Sources
			}
			// Accepts integer or float JSON numbers; both decode to float64.
			resp.Confidence = out.Confidence
		}
	}

	if len(env.Error) > 0 && !bytes.Equal(bytes.TrimSpace(env.Error), []byte("null")) {
		errBody := bytes.TrimSpace(env.Error)
		switch errBody[0] {
		case '{':
			var we wireError
			if err := json.Unmarshal(errBody, &we); err == nil {
				resp.ErrorCode = we.Code
				resp.ErrorMessage = we.Message
				resp.ErrorDetails = we.Details
			}
		case '"':
			// Legacy shape: a bare error string carries the message only.
			var msg string
			if err := json.Unmarshal(errBody, &msg); err == nil {
				resp.ErrorMessage = msg
			}
		}
	}

	return resp, true
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
