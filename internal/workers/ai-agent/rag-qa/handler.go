// internal/workers/ai-agent/rag-qa/handler.go
package ragqa

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	cerrors "rag-agent-connector/internal/common/errors"
	"rag-agent-connector/internal/common/httpclient"
	"rag-agent-connector/internal/common/logger"
	"rag-agent-connector/internal/common/metrics"
	"rag-agent-connector/internal/common/observability"
	"rag-agent-connector/internal/common/params"
)

const TaskType = "rag-qa"

// Handler runs the connector lifecycle for one job: validate the input
// variables, configure the transport, execute the agent call, and map the
// reply into output variables. Handled failures (timeouts, agent-declared
// errors, malformed replies) complete the job with an error-status output;
// fatal failures (network, unexpected) fail the job.
type Handler struct {
	config       *Config
	httpClient   *httpclient.Client
	agentClient  AgentClient
	logger       logger.Logger
	errorHandler *cerrors.ErrorHandler
	obs          *observability.Observability
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.With(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		httpClient:   httpclient.New(),
		logger:       scoped,
		errorHandler: cerrors.NewErrorHandler(scoped),
	}
}

// WithObservability attaches the shared otel instruments.
func (h *Handler) WithObservability(obs *observability.Observability) *Handler {
	h.obs = obs
	return h
}

// NewHandlerWithClient injects a transport, for tests.
func NewHandlerWithClient(config *Config, client AgentClient, log logger.Logger) *Handler {
	h := NewHandler(config, log)
	h.agentClient = client
	return h
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	requestID := uuid.New().String()
	log := h.logger.With(map[string]interface{}{
		"jobKey":    job.Key,
		"requestId": requestID,
	})

	metrics.ConnectorJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.ConnectorJobsActive.WithLabelValues(TaskType).Dec()

	log.Info("processing job", map[string]interface{}{
		"processInstanceKey": job.ProcessInstanceKey,
	})

	ctx := context.Background()

	bag, err := params.FromJSON([]byte(job.Variables))
	if err != nil {
		metrics.ConnectorJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeValidation)).Inc()
		h.recordJob(ctx, "failed")
		h.errorHandler.HandleJobError(ctx, client, job,
			cerrors.NewValidationError("job variables are not valid JSON: "+err.Error()))
		return
	}

	output, err := h.run(ctx, bag, log)
	if err != nil {
		code := cerrors.ErrCodeInternal
		if stdErr, ok := err.(*cerrors.StandardError); ok {
			code = stdErr.Code
		}
		metrics.ConnectorJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
		h.recordJob(ctx, "failed")
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output, log)
	metrics.ConnectorJobsCompleted.WithLabelValues(TaskType, output.Status).Inc()
	h.recordJob(ctx, output.Status)

	log.Info("job completed", map[string]interface{}{
		"status": output.Status,
	})
}

// run carries a parsed variable bag through validate -> connect -> execute.
// Validation failures return before any transport is configured, so an
// invalid job never reaches the agent.
func (h *Handler) run(ctx context.Context, bag params.Bag, log logger.Logger) (*Output, error) {
	if result := ValidateInput(bag, h.config); !result.Valid() {
		log.Warn("input validation failed", map[string]interface{}{
			"violations": len(result.Errors),
		})
		return nil, cerrors.NewValidationError(result.Error())
	}

	in := InputFromBag(bag, h.config)

	// Transport configuration only, no network activity.
	agentClient := h.connect(in, log)

	return h.execute(ctx, in, agentClient, log)
}

// connect builds a fresh transport for this job. Per-job construction keeps
// endpoint, token and timeout off any shared object; only the pooled HTTP
// client is reused.
func (h *Handler) connect(in *Input, log logger.Logger) AgentClient {
	if h.agentClient != nil {
		return h.agentClient
	}

	timeoutMs := h.config.TimeoutMs
	if in.TimeoutMs != nil {
		timeoutMs = *in.TimeoutMs
	}
	if timeoutMs <= 0 {
		timeoutMs = DefaultTimeoutMs
	}

	return NewHTTPAgentClient(in.AgentURL, in.AuthToken,
		time.Duration(timeoutMs)*time.Millisecond, h.httpClient, log)
}

// execute runs build -> send -> map. The returned error is fatal; handled
// failures come back as an error-status Output.
func (h *Handler) execute(ctx context.Context, in *Input, agentClient AgentClient, log logger.Logger) (*Output, error) {
	req := NewAgentRequest(in, h.config.LLMApiURL)

	start := time.Now()
	resp, err := agentClient.Send(ctx, req)
	if err != nil {
		log.WithError(err).Error("agent communication failed", nil)
		return nil, err
	}
	if h.obs != nil {
		h.obs.RecordAgentLatency(ctx, time.Since(start), resp.Status)
	}

	return OutputFromResponse(resp), nil
}

func (h *Handler) recordJob(ctx context.Context, status string) {
	if h.obs != nil {
		h.obs.RecordJobProcessed(ctx, status)
	}
}

// Execute exposes the validated call path for direct (non-worker) usage.
func (h *Handler) Execute(ctx context.Context, in *Input) (*Output, error) {
	return h.execute(ctx, in, h.connect(in, h.logger), h.logger)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.WithError(err).Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
		})
		return
	}

	if _, err = cmd.Send(ctx); err != nil {
		log.WithError(err).Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
		})
	}
}
