package models

// schema types understood by every provider
const (
	SchemaObject  = "object"
	SchemaArray   = "array"
	SchemaString  = "string"
	SchemaInteger = "integer"
	SchemaNumber  = "number"
)

// Schema constrains structured generation output. Providers translate it to their native form.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Minimum     *float64           `json:"minimum,omitempty"`
	Maximum     *float64           `json:"maximum,omitempty"`
	MinItems    *int64             `json:"minItems,omitempty"`
	MaxItems    *int64             `json:"maxItems,omitempty"`
}

// GenerationRequest is a single prompt sent to an LLM provider.
type GenerationRequest struct {
	RequestID         string
	Prompt            string
	SystemInstruction string
	// ResponseSchema switches the provider to JSON output constrained by the schema.
	ResponseSchema *Schema
}

type GenerationMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
	Model          string `json:"model"`
}

type GenerationResponse struct {
	Content   string             `json:"content"`
	RequestID string             `json:"request_id"`
	Metadata  GenerationMetadata `json:"metadata"`
}
