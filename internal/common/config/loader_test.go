// internal/common/config/loader_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults_ZeroConfig(t *testing.T) {
	var cfg Config

	applyDefaults(&cfg)

	assert.Equal(t, "rag-agent-connector", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "localhost:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, 60000, cfg.Camunda.Timeout)
	assert.Equal(t, 30000, cfg.Camunda.RequestTimeout)
	assert.Equal(t, defaultAgentURL, cfg.Agent.URL)
	assert.Equal(t, defaultAgentTimeoutMs, cfg.Agent.TimeoutMs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Metrics.Address)
	assert.NotNil(t, cfg.Workers)

	require.NoError(t, validateConfig(&cfg))
}

func TestApplyDefaults_CamundaTimeoutsNeverZero(t *testing.T) {
	// An omitted camunda.timeout would otherwise feed a zero activation
	// timeout into the job worker.
	tests := []struct {
		name           string
		timeout        int
		requestTimeout int
		wantTimeout    int
		wantRequest    int
	}{
		{name: "both omitted", wantTimeout: 60000, wantRequest: 30000},
		{name: "negative values", timeout: -1, requestTimeout: -1, wantTimeout: 60000, wantRequest: 30000},
		{name: "explicit values kept", timeout: 15000, requestTimeout: 5000, wantTimeout: 15000, wantRequest: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				Camunda: CamundaConfig{
					Timeout:        tt.timeout,
					RequestTimeout: tt.requestTimeout,
				},
			}

			applyDefaults(&cfg)

			assert.Equal(t, tt.wantTimeout, cfg.Camunda.Timeout)
			assert.Equal(t, tt.wantRequest, cfg.Camunda.RequestTimeout)
		})
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := Config{
		App:     AppConfig{Name: "custom", Environment: "production"},
		Camunda: CamundaConfig{BrokerAddress: "zeebe:26500", MaxJobsActive: 32},
		Agent:   AgentConfig{URL: "http://agent:9000/run", TimeoutMs: 5000},
		Logging: LoggingConfig{Level: "debug", Format: "json"},
	}

	applyDefaults(&cfg)

	assert.Equal(t, "custom", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, 32, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, "http://agent:9000/run", cfg.Agent.URL)
	assert.Equal(t, 5000, cfg.Agent.TimeoutMs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvAgentURL, "http://override:8000/run")
	t.Setenv(EnvAgentTimeoutMs, "12000")
	t.Setenv("ZEEBE_BROKER_ADDRESS", "broker:26500")
	t.Setenv("AI_AGENT_AUTH_TOKEN", "secret")

	var cfg Config
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	assert.Equal(t, "http://override:8000/run", cfg.Agent.URL)
	assert.Equal(t, 12000, cfg.Agent.TimeoutMs)
	assert.Equal(t, "broker:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, "secret", cfg.Agent.AuthToken)
}

func TestApplyEnvOverrides_IgnoresInvalidTimeout(t *testing.T) {
	t.Setenv(EnvAgentTimeoutMs, "not-a-number")

	var cfg Config
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	assert.Equal(t, defaultAgentTimeoutMs, cfg.Agent.TimeoutMs)
}
