package webapp

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ettle/strcase"

	"github.com/analytica/webapp/pkg/backend"
)

// KPICard is one summary tile on the dashboard.
type KPICard struct {
	Title string
	Value string
	Icon  string
}

// kpiOrder pins the well-known KPI keys to a stable position and icon; any
// extra keys the backend sends are appended alphabetically after them.
var kpiOrder = []struct {
	key  string
	icon string
}{
	{"total_records", "records"},
	{"data_completeness", "completeness"},
	{"missing_cells", "missing"},
}

// KPICards derives the dashboard tiles from an analysis result. The quality
// score gets its own card; every other value is rendered as received, with
// the key humanized for display.
func KPICards(analysis backend.AnalysisResult) []KPICard {
	cards := make([]KPICard, 0, len(analysis.KPIs)+1)
	seen := map[string]bool{}
	for _, entry := range kpiOrder {
		value, ok := analysis.KPIs[entry.key]
		if !ok {
			continue
		}
		seen[entry.key] = true
		cards = append(cards, KPICard{
			Title: humanizeKey(entry.key),
			Value: formatKPIValue(entry.key, value),
			Icon:  entry.icon,
		})
	}
	if len(analysis.KPIs) > 0 {
		quality := KPICard{
			Title: "Data Quality",
			Value: fmt.Sprintf("%s%%", trimFloat(analysis.QualityScore)),
			Icon:  "quality",
		}
		if len(cards) > 0 {
			// Quality sits second, after the record count.
			cards = append(cards[:1], append([]KPICard{quality}, cards[1:]...)...)
		} else {
			cards = append(cards, quality)
		}
	}
	extras := make([]string, 0, len(analysis.KPIs))
	for key := range analysis.KPIs {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		cards = append(cards, KPICard{
			Title: humanizeKey(key),
			Value: formatKPIValue(key, analysis.KPIs[key]),
			Icon:  "metric",
		})
	}
	return cards
}

func humanizeKey(key string) string {
	return strcase.ToCase(key, strcase.TitleCase, ' ')
}

func formatKPIValue(key string, value any) string {
	switch val := value.(type) {
	case float64:
		formatted := trimFloat(val)
		if strings.Contains(key, "completeness") || strings.Contains(key, "percentage") {
			return formatted + "%"
		}
		if val == float64(int64(val)) {
			return groupThousands(int64(val))
		}
		return formatted
	case int:
		return groupThousands(int64(val))
	case int64:
		return groupThousands(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return groupThousands(n)
		}
		return val.String()
	case string:
		return val
	case nil:
		return "0"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if negative {
		out = "-" + out
	}
	return out
}

// InsightView decorates an insight with its badge styling class.
type InsightView struct {
	Title       string
	Description string
	Category    string
	Importance  string
}

// BadgeClass maps the importance tier onto a CSS class.
func (v InsightView) BadgeClass() string {
	switch strings.ToLower(v.Importance) {
	case "high":
		return "badge-high"
	case "medium":
		return "badge-medium"
	default:
		return "badge-low"
	}
}

// InsightViews converts backend insights in order.
func InsightViews(insights []backend.Insight) []InsightView {
	views := make([]InsightView, len(insights))
	for i, insight := range insights {
		views[i] = InsightView{
			Title:       insight.Title,
			Description: insight.Description,
			Category:    insight.Category,
			Importance:  insight.Importance,
		}
	}
	return views
}

// PreviewCell is one rendered table cell; missing cells render a dash.
type PreviewCell struct {
	Value   string
	Missing bool
}

// PreviewView is the sample table shown after an upload.
type PreviewView struct {
	Columns []string
	Rows    [][]PreviewCell
	Total   int
}

// Empty reports whether the preview has nothing renderable. A response
// lacking rows or columns yields an empty view, and the template renders
// nothing for it.
func (v PreviewView) Empty() bool {
	return len(v.Columns) == 0 || len(v.Rows) == 0
}

// Shown is the number of sample rows in the table.
func (v PreviewView) Shown() int {
	return len(v.Rows)
}

// BuildPreview flattens the column-keyed sample rows into cell rows ordered
// by the backend's column sequence.
func BuildPreview(preview backend.Preview) PreviewView {
	view := PreviewView{
		Columns: preview.Columns,
		Total:   preview.TotalRows,
	}
	if len(preview.Columns) == 0 || len(preview.Rows) == 0 {
		return view
	}
	view.Rows = make([][]PreviewCell, len(preview.Rows))
	for i, row := range preview.Rows {
		cells := make([]PreviewCell, len(preview.Columns))
		for j, column := range preview.Columns {
			value, ok := row[column]
			if !ok || value == nil {
				cells[j] = PreviewCell{Missing: true}
				continue
			}
			cells[j] = PreviewCell{Value: stringValue(value, fmt.Sprintf("%v", value))}
		}
		view.Rows[i] = cells
	}
	return view
}

// DatasetView decorates a dataset summary for the grid cards.
type DatasetView struct {
	backend.DatasetSummary
}

// Shape renders the rows × columns line.
func (v DatasetView) Shape() string {
	return fmt.Sprintf("%s rows × %d columns", groupThousands(int64(v.NumRows)), v.NumColumns)
}

// UploadedOn renders the upload date.
func (v DatasetView) UploadedOn() string {
	return v.UploadedAt.Format("Jan 2, 2006")
}

// StatusBadge is the Analyzed/Pending label.
func (v DatasetView) StatusBadge() string {
	if v.IsAnalyzed {
		return "Analyzed"
	}
	return "Pending"
}

// DatasetViews converts summaries in list order.
func DatasetViews(datasets []backend.DatasetSummary) []DatasetView {
	views := make([]DatasetView, len(datasets))
	for i, dataset := range datasets {
		views[i] = DatasetView{dataset}
	}
	return views
}

// AnalyzedOnly filters to datasets with a completed analysis, preserving
// order. The reports page lists only these.
func AnalyzedOnly(datasets []backend.DatasetSummary) []backend.DatasetSummary {
	var analyzed []backend.DatasetSummary
	for _, dataset := range datasets {
		if dataset.IsAnalyzed {
			analyzed = append(analyzed, dataset)
		}
	}
	return analyzed
}

// ChatMessageView is one transcript entry plus its rendered attachments.
type ChatMessageView struct {
	ID        string
	Role      string
	Content   string
	Timestamp time.Time
	Data      string
	Chart     *ChartView
}

// HasData reports whether the message carries a tabular payload.
func (v ChatMessageView) HasData() bool {
	return v.Data != ""
}

// QualityIssueView decorates a quality issue for the table.
type QualityIssueView struct {
	backend.QualityIssue
}

// BadgeClass maps the severity tier onto a CSS class.
func (v QualityIssueView) BadgeClass() string {
	switch strings.ToLower(v.Severity) {
	case "high":
		return "badge-high"
	case "medium":
		return "badge-medium"
	default:
		return "badge-low"
	}
}

// Affected renders the issue extent, with the percentage when present.
func (v QualityIssueView) Affected() string {
	if v.Percentage > 0 {
		return fmt.Sprintf("%s cells (%s%%)", groupThousands(int64(v.Count)), trimFloat(v.Percentage))
	}
	return fmt.Sprintf("%s cells", groupThousands(int64(v.Count)))
}

// QualityIssueViews converts issues in report order.
func QualityIssueViews(issues []backend.QualityIssue) []QualityIssueView {
	views := make([]QualityIssueView, len(issues))
	for i, issue := range issues {
		views[i] = QualityIssueView{issue}
	}
	return views
}

// StatRow decorates per-column statistics; absent values render as a dash.
type StatRow struct {
	backend.ColumnStatistics
}

// Stat formats one optional statistic.
func (v StatRow) Stat(value *float64) string {
	if value == nil {
		return "—"
	}
	return trimFloat(*value)
}

// ModeValue renders the mode, which may be any scalar.
func (v StatRow) ModeValue() string {
	if v.Mode == nil {
		return "—"
	}
	return stringValue(v.Mode, fmt.Sprintf("%v", v.Mode))
}

// StatRows converts column statistics in report order.
func StatRows(stats []backend.ColumnStatistics) []StatRow {
	rows := make([]StatRow, len(stats))
	for i, stat := range stats {
		rows[i] = StatRow{stat}
	}
	return rows
}
