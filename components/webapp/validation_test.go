package webapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analytica/webapp/pkg/backend"
)

func TestDescriptorValidatorAcceptsWellFormedChart(t *testing.T) {
	t.Parallel()
	validator, err := NewDescriptorValidator()
	require.NoError(t, err)

	assert.NoError(t, validator.Validate(sampleChart("bar")))
}

func TestDescriptorValidatorAcceptsUnknownChartType(t *testing.T) {
	t.Parallel()
	validator, err := NewDescriptorValidator()
	require.NoError(t, err)

	// Unknown types must pass validation so the renderer can surface its
	// own "unsupported" message naming the type.
	assert.NoError(t, validator.Validate(sampleChart("treemap")))
}

func TestDescriptorValidatorRejectsEmptyChartType(t *testing.T) {
	t.Parallel()
	validator, err := NewDescriptorValidator()
	require.NoError(t, err)

	chart := sampleChart("bar")
	chart.ChartType = ""
	assert.Error(t, validator.Validate(chart))
}

func TestDescriptorValidatorRejectsNonObjectDataPoints(t *testing.T) {
	t.Parallel()
	validator, err := NewDescriptorValidator()
	require.NoError(t, err)

	chart := backend.ChartConfig{
		ID:        "c9",
		ChartType: "bar",
		Title:     "Broken",
		Data:      []map[string]any{nil},
	}
	// A nil map marshals to JSON null, which is not an object.
	assert.Error(t, validator.Validate(chart))
}
