package webapp

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/analytica/webapp/pkg/backend"
)

// chartDescriptorSchema constrains the structural shape of a backend chart
// descriptor. The chart_type value itself is deliberately unconstrained:
// unknown types must reach the renderer's "unsupported" placeholder, not a
// validation error.
const chartDescriptorSchema = `{
	"type": "object",
	"required": ["chart_type", "title", "data"],
	"properties": {
		"chart_type": {"type": "string", "minLength": 1},
		"title": {"type": "string"},
		"description": {"type": "string"},
		"x_column": {"type": "string"},
		"y_column": {"type": "string"},
		"data": {
			"type": "array",
			"items": {"type": "object"}
		}
	}
}`

// DescriptorValidator checks chart descriptors against the schema before any
// rendering happens. Descriptors arrive from the backend, but a malformed one
// must degrade to a placeholder rather than break the page.
type DescriptorValidator struct {
	schema *jsonschema.Schema
}

// NewDescriptorValidator compiles the descriptor schema once.
func NewDescriptorValidator() (*DescriptorValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("chart_descriptor.json", strings.NewReader(chartDescriptorSchema)); err != nil {
		return nil, fmt.Errorf("webapp: load chart descriptor schema: %w", err)
	}
	schema, err := compiler.Compile("chart_descriptor.json")
	if err != nil {
		return nil, fmt.Errorf("webapp: compile chart descriptor schema: %w", err)
	}
	return &DescriptorValidator{schema: schema}, nil
}

// Validate ensures the descriptor satisfies the schema.
func (v *DescriptorValidator) Validate(chart backend.ChartConfig) error {
	data, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("webapp: marshal chart descriptor %s: %w", chart.ID, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("webapp: normalize chart descriptor %s: %w", chart.ID, err)
	}
	if err := v.schema.Validate(payload); err != nil {
		return fmt.Errorf("webapp: chart descriptor %s failed validation: %w", chart.ID, err)
	}
	return nil
}
