// internal/workers/ai-agent/rag-qa/client.go
package ragqa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	cerrors "rag-agent-connector/internal/common/errors"
	"rag-agent-connector/internal/common/httpclient"
	"rag-agent-connector/internal/common/logger"
	"rag-agent-connector/internal/common/metrics"
)

// AgentClient abstracts the transport to the RAG agent so handler tests can
// substitute a double.
type AgentClient interface {
	Send(ctx context.Context, req *AgentRequest) (*AgentResponse, error)
	IsConfigured() bool
}

// HTTPAgentClient issues one POST per Send. Its configuration is fixed at
// construction; the orchestrator builds a fresh instance per job so
// concurrent jobs never share per-call state. The underlying HTTP client
// may be shared.
type HTTPAgentClient struct {
	endpoint  string
	authToken string
	timeout   time.Duration
	http      *httpclient.Client
	logger    logger.Logger
}

func NewHTTPAgentClient(endpoint, authToken string, timeout time.Duration, hc *httpclient.Client, log logger.Logger) *HTTPAgentClient {
	if hc == nil {
		hc = httpclient.New()
	}
	if timeout <= 0 {
		timeout = time.Duration(DefaultTimeoutMs) * time.Millisecond
	}
	return &HTTPAgentClient{
		endpoint:  endpoint,
		authToken: authToken,
		timeout:   timeout,
		http:      hc,
		logger:    log,
	}
}

func (c *HTTPAgentClient) IsConfigured() bool {
	return strings.TrimSpace(c.endpoint) != ""
}

// Send posts the request and maps the reply. A timeout is an expected,
// recoverable outcome and comes back as an error-status AgentResponse;
// network-level failures are returned as errors for the caller to escalate.
func (c *HTTPAgentClient) Send(ctx context.Context, req *AgentRequest) (*AgentResponse, error) {
	if !c.IsConfigured() {
		return nil, cerrors.NewInternalError(errors.New("agent URL is not configured"))
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, cerrors.NewInternalError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, cerrors.NewInternalError(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	if token := strings.TrimSpace(c.authToken); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	elapsed := time.Since(start)

	if err != nil {
		if isDeadlineExceeded(ctx, err) {
			return c.timeoutResponse(), nil
		}
		if errors.Is(err, context.Canceled) {
			return nil, cerrors.NewInternalError(errors.New("agent request interrupted"))
		}
		return nil, cerrors.NewAgentUnreachableError(err)
	}
	defer httpResp.Body.Close()

	rawBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		// The deadline covers the full exchange; expiring mid-body is
		// still the handled timeout, not a network failure.
		if isDeadlineExceeded(ctx, err) {
			return c.timeoutResponse(), nil
		}
		return nil, cerrors.NewAgentUnreachableError(err)
	}

	metrics.AgentRequestDuration.WithLabelValues(TaskType).Observe(elapsed.Seconds())
	c.logger.Info("agent responded", map[string]interface{}{
		"httpStatus": httpResp.StatusCode,
		"latencyMs":  elapsed.Milliseconds(),
	})

	return ParseResponse(httpResp.StatusCode, rawBody), nil
}

func isDeadlineExceeded(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded
}

// timeoutResponse builds the handled error-status reply for an expired
// per-call deadline.
func (c *HTTPAgentClient) timeoutResponse() *AgentResponse {
	timeoutMs := int(c.timeout / time.Millisecond)
	c.logger.Warn("agent request timed out", map[string]interface{}{
		"endpoint":  c.endpoint,
		"timeoutMs": timeoutMs,
	})
	stdErr := cerrors.NewAgentTimeoutError(timeoutMs)
	return NewErrorResponse(stdErr.Code, stdErr.Message)
}
