// internal/common/validation/schema.go
package validation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONSchema describes a worker's input or output contract. It is published
// through the activity registry so process designers can see what each task
// expects.
type JSONSchema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties,omitempty"`
}

type Property struct {
	Type        string      `json:"type"`
	Description string      `json:"description,omitempty"`
	Default     interface{} `json:"default,omitempty"`
	Minimum     *float64    `json:"minimum,omitempty"`
	Maximum     *float64    `json:"maximum,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
	MinLength   *int        `json:"minLength,omitempty"`
	MaxLength   *int        `json:"maxLength,omitempty"`
	Items       *Property   `json:"items,omitempty"`
}

// ToMap renders the schema as a generic map for registry publication.
func (s JSONSchema) ToMap() map[string]interface{} {
	data, _ := json.Marshal(s)
	var out map[string]interface{}
	_ = json.Unmarshal(data, &out)
	return out
}

// ValidationError is a single field-level violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Result aggregates every violation found during a validation pass.
// Validators collect all errors before reporting so the process designer
// sees every problem at once instead of fixing them one by one.
type Result struct {
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Add records a violation for field.
func (r *Result) Add(field, message, code string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message, Code: code})
}

// Addf records a violation with a formatted message.
func (r *Result) Addf(field, code, format string, args ...interface{}) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Code:    code,
	})
}

// Error joins every violation into one message, "; "-separated.
func (r *Result) Error() string {
	if r.Valid() {
		return ""
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}
