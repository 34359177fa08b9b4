package webapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/analytica/webapp/pkg/backend"
)

func TestKPICardsOrdering(t *testing.T) {
	t.Parallel()
	analysis := backend.AnalysisResult{
		QualityScore: 92.5,
		KPIs: map[string]any{
			"total_records":     float64(4400),
			"data_completeness": 98.2,
			"missing_cells":     float64(12),
			"duplicate_rows":    float64(3),
		},
	}

	cards := KPICards(analysis)
	require.Len(t, cards, 5)

	assert.Equal(t, "Total Records", cards[0].Title)
	assert.Equal(t, "4,400", cards[0].Value)
	assert.Equal(t, "Data Quality", cards[1].Title)
	assert.Equal(t, "92.5%", cards[1].Value)
	assert.Equal(t, "Data Completeness", cards[2].Title)
	assert.Equal(t, "98.2%", cards[2].Value)
	assert.Equal(t, "Missing Cells", cards[3].Title)
	assert.Equal(t, "12", cards[3].Value)
	assert.Equal(t, "Duplicate Rows", cards[4].Title)
}

func TestKPICardsQualityCardWithoutWellKnownKeys(t *testing.T) {
	t.Parallel()
	analysis := backend.AnalysisResult{
		QualityScore: 77.0,
		KPIs:         map[string]any{"custom_metric": 5.5},
	}

	cards := KPICards(analysis)
	require.Len(t, cards, 2)
	assert.Equal(t, "Data Quality", cards[0].Title)
	assert.Equal(t, "77%", cards[0].Value)
	assert.Equal(t, "Custom Metric", cards[1].Title)
}

func TestKPICardsEmpty(t *testing.T) {
	t.Parallel()
	cards := KPICards(backend.AnalysisResult{QualityScore: 80})
	assert.Empty(t, cards)
}

func TestFormatKPIValue(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1,234,567", formatKPIValue("total_records", float64(1234567)))
	assert.Equal(t, "97.3%", formatKPIValue("data_completeness", 97.3))
	assert.Equal(t, "12.75", formatKPIValue("avg_price", 12.75))
	assert.Equal(t, "n/a", formatKPIValue("note", "n/a"))
	assert.Equal(t, "0", formatKPIValue("anything", nil))
}

func TestGroupThousands(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0", groupThousands(0))
	assert.Equal(t, "999", groupThousands(999))
	assert.Equal(t, "1,000", groupThousands(1000))
	assert.Equal(t, "-12,345", groupThousands(-12345))
}

func TestBuildPreviewMarksMissingCells(t *testing.T) {
	t.Parallel()
	preview := backend.Preview{
		Columns:   []string{"name", "amount", "region"},
		TotalRows: 120,
		Rows: []map[string]any{
			{"name": "Widget", "amount": 12.5, "region": "North"},
			{"name": "Gadget", "amount": nil},
		},
	}

	view := BuildPreview(preview)
	require.False(t, view.Empty())
	assert.Equal(t, 2, view.Shown())
	assert.Equal(t, 120, view.Total)

	assert.Equal(t, "Widget", view.Rows[0][0].Value)
	assert.Equal(t, "12.5", view.Rows[0][1].Value)
	assert.True(t, view.Rows[1][1].Missing, "explicit null renders as missing")
	assert.True(t, view.Rows[1][2].Missing, "absent key renders as missing")
}

func TestBuildPreviewEmptyResponse(t *testing.T) {
	t.Parallel()
	assert.True(t, BuildPreview(backend.Preview{}).Empty())
	assert.True(t, BuildPreview(backend.Preview{Columns: []string{"a"}}).Empty())
}

func TestDatasetViewDecorations(t *testing.T) {
	t.Parallel()
	view := DatasetView{backend.DatasetSummary{
		Filename:   "sales.csv",
		NumRows:    4400,
		NumColumns: 5,
		UploadedAt: time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
		IsAnalyzed: true,
	}}

	assert.Equal(t, "4,400 rows × 5 columns", view.Shape())
	assert.Equal(t, "Mar 14, 2026", view.UploadedOn())
	assert.Equal(t, "Analyzed", view.StatusBadge())

	view.IsAnalyzed = false
	assert.Equal(t, "Pending", view.StatusBadge())
}

func TestAnalyzedOnly(t *testing.T) {
	t.Parallel()
	datasets := []backend.DatasetSummary{
		{ID: "d1", IsAnalyzed: true},
		{ID: "d2"},
		{ID: "d3", IsAnalyzed: true},
	}

	analyzed := AnalyzedOnly(datasets)
	require.Len(t, analyzed, 2)
	assert.Equal(t, "d1", analyzed[0].ID)
	assert.Equal(t, "d3", analyzed[1].ID)
}

func TestInsightBadgeClass(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "badge-high", InsightView{Importance: "high"}.BadgeClass())
	assert.Equal(t, "badge-medium", InsightView{Importance: "medium"}.BadgeClass())
	assert.Equal(t, "badge-low", InsightView{Importance: "low"}.BadgeClass())
	assert.Equal(t, "badge-low", InsightView{Importance: "unknown"}.BadgeClass())
}
