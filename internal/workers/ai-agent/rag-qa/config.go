// internal/workers/ai-agent/rag-qa/config.go
package ragqa

type Config struct {
	// AgentURL is the default endpoint used when the process does not
	// supply agentUrl itself.
	AgentURL  string
	AuthToken string
	TimeoutMs int
	// LLMApiURL is passed through to the agent only when set.
	LLMApiURL string
}

func DefaultConfig() *Config {
	return &Config{
		AgentURL:  "http://localhost:8000/run",
		TimeoutMs: DefaultTimeoutMs,
	}
}
