package ragqa

import (
	"fmt"

	cerrors "rag-agent-connector/internal/common/errors"
	"rag-agent-connector/pkg/registry"
)

// Descriptor publishes this connector to the activity registry.
func Descriptor() registry.Activity {
	return registry.Activity{
		ID:                   "rag-qa",
		DisplayName:          "RAG Question Answering",
		Description:          "Forwards a question to the retrieval-augmented agent service and maps its reply to process variables",
		Category:             "ai-agent",
		Version:              "1.0.0",
		TaskType:             TaskType,
		ImplementationStatus: "completed",
		InputSchema:          GetInputSchema().ToMap(),
		OutputSchema:         GetOutputSchema().ToMap(),
		ErrorCodes: []string{
			string(cerrors.ErrCodeValidation),
			string(cerrors.ErrCodeUnsupportedTask),
			string(cerrors.ErrCodeAgentTimeout),
			string(cerrors.ErrCodeLLM),
			string(cerrors.ErrCodeAgentUnreachable),
			string(cerrors.ErrCodeInternal),
		},
		Timeout: fmt.Sprintf("%dms", DefaultTimeoutMs),
		Retries: 3,
		Tags:    []string{"ai", "rag", "llm"},
	}
}
