// cmd/connector-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rag-agent-connector/internal/common/camunda"
	"rag-agent-connector/internal/common/config"
	"rag-agent-connector/internal/common/logger"
	"rag-agent-connector/internal/common/observability"
	ragqa "rag-agent-connector/internal/workers/ai-agent/rag-qa"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting connector manager...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully",
		zap.String("gatewayAddress", cfg.Camunda.BrokerAddress),
	)

	zapLog.Info("Agent endpoint configured",
		zap.String("agentUrl", cfg.Agent.URL),
		zap.Int("timeoutMs", cfg.Agent.TimeoutMs),
		zap.Bool("authConfigured", cfg.Agent.AuthToken != ""),
	)

	// --- Register Connector Workers ---
	var workers []*camunda.Worker

	if workerCfg, ok := cfg.Workers[ragqa.TaskType]; !ok || workerCfg.Enabled {
		handler := ragqa.NewHandler(
			&ragqa.Config{
				AgentURL:  cfg.Agent.URL,
				AuthToken: cfg.Agent.AuthToken,
				TimeoutMs: cfg.Agent.TimeoutMs,
				LLMApiURL: cfg.Agent.LLMApiURL,
			},
			log,
		).WithObservability(obs)
		workers = append(workers, startWorker(camundaClient, ragqa.TaskType, workerCfg, cfg, handler.Handle, zapLog))
	}

	zapLog.Info("All connector workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go serveHealthAndMetrics(cfg.Metrics.Address, zapLog)
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for _, w := range workers {
			w.Stop()
		}
		close(done)
	}()

	select {
	case <-done:
	case <-shutdownCtx.Done():
		zapLog.Warn("Worker shutdown timed out")
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}
	zapLog.Info("Connector manager stopped")
}

func startWorker(client *camunda.Client, taskType string, workerCfg config.WorkerConfig, cfg *config.Config, handlerFunc camunda.HandlerFunc, log *zap.Logger) *camunda.Worker {
	maxJobsActive := workerCfg.MaxJobsActive
	if maxJobsActive <= 0 {
		maxJobsActive = cfg.Camunda.MaxJobsActive
	}
	timeoutMs := workerCfg.Timeout
	if timeoutMs <= 0 {
		timeoutMs = cfg.Camunda.Timeout
	}
	return camunda.StartWorker(client.GetClient(), taskType, maxJobsActive,
		time.Duration(timeoutMs)*time.Millisecond, handlerFunc, log)
}

func serveHealthAndMetrics(address string, log *zap.Logger) {
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ready",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	http.Handle("/metrics", promhttp.Handler())
	log.Info("Health/Metrics server listening", zap.String("address", address))
	if err := http.ListenAndServe(address, nil); err != nil {
		log.Error("Health/Metrics server failed", zap.Error(err))
	}
}
