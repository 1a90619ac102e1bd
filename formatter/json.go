package formatter

import (
	"encoding/json"
)

// ResponseBuilder serializes deliveries
type ResponseBuilder struct{}

// NewResponseBuilder creates a new response builder
func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// BuildJSON serializes any response body to JSON
func (rb *ResponseBuilder) BuildJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}
