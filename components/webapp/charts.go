package webapp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/analytica/webapp/pkg/backend"
)

const defaultChartHeight = "320px"

// chartPalette is the fixed cyclic palette used for pie slices and series
// colors, indexed by position.
var chartPalette = []string{
	"#f97316", "#ea580c", "#fb923c", "#ec4899",
	"#f472b6", "#fb7185", "#fdba74", "#c2410c",
}

const (
	placeholderNoData     = "No data available"
	placeholderInvalid    = "Unable to render this chart"
	unsupportedChartLabel = "Unsupported chart type"
)

var errUnsupportedChartType = errors.New("unsupported chart type")

// ChartView is what templates render for one chart descriptor: either the
// server-rendered ECharts markup or a placeholder message, never both.
type ChartView struct {
	ID          string
	Title       string
	Description string
	HTML        template.HTML
	Placeholder string
}

// ChartRenderer maps backend chart descriptors onto go-echarts output. It is
// a pure mapping: values are rendered as received, with no client-side
// aggregation, binning, or scaling.
type ChartRenderer struct {
	cache     RenderCache
	validator *DescriptorValidator
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithRenderCache injects a render cache.
func WithRenderCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// NewChartRenderer builds a renderer with descriptor validation and a
// shared TTL cache.
func NewChartRenderer(options ...ChartRendererOption) (*ChartRenderer, error) {
	validator, err := NewDescriptorValidator()
	if err != nil {
		return nil, err
	}
	r := &ChartRenderer{
		cache:     NewChartCache(5 * time.Minute),
		validator: validator,
	}
	for _, opt := range options {
		opt(r)
	}
	return r, nil
}

// Render produces the view for one descriptor. Empty data and unknown chart
// types degrade to placeholders without touching the charting primitive.
func (r *ChartRenderer) Render(chart backend.ChartConfig, theme Theme) ChartView {
	view := ChartView{
		ID:          chart.ID,
		Title:       chart.Title,
		Description: chart.Description,
	}
	if len(chart.Data) == 0 {
		view.Placeholder = placeholderNoData
		return view
	}
	if err := r.validator.Validate(chart); err != nil {
		view.Placeholder = placeholderInvalid
		return view
	}

	renderFn := func() (string, error) {
		return r.renderChart(chart, theme)
	}

	var (
		html string
		err  error
	)
	if r.cache != nil {
		html, err = r.cache.GetOrRender(descriptorHash(chart, theme), renderFn)
	} else {
		html, err = renderFn()
	}
	if err != nil {
		if errors.Is(err, errUnsupportedChartType) {
			view.Placeholder = fmt.Sprintf("%s: %s", unsupportedChartLabel, chart.ChartType)
		} else {
			view.Placeholder = placeholderInvalid
		}
		return view
	}
	view.HTML = template.HTML(html)
	return view
}

func (r *ChartRenderer) renderChart(chart backend.ChartConfig, theme Theme) (string, error) {
	switch strings.ToLower(chart.ChartType) {
	case "bar", "histogram":
		return r.renderBarChart(chart, theme)
	case "line":
		return r.renderLineChart(chart, theme)
	case "pie":
		return r.renderPieChart(chart, theme)
	case "scatter":
		return r.renderScatterChart(chart, theme)
	default:
		return "", fmt.Errorf("%w: %s", errUnsupportedChartType, chart.ChartType)
	}
}

func (r *ChartRenderer) renderBarChart(chart backend.ChartConfig, theme Theme) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(theme)...)
	bar.SetXAxis(xAxisLabels(chart.Data))
	bar.AddSeries(seriesName(chart), toBarData(chart.Data))
	return renderChart(bar)
}

func (r *ChartRenderer) renderLineChart(chart backend.ChartConfig, theme Theme) (string, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(r.globalChartOptions(theme)...)
	line.SetXAxis(xAxisLabels(chart.Data))
	line.AddSeries(seriesName(chart), toLineData(chart.Data))
	line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return renderChart(line)
}

func (r *ChartRenderer) renderPieChart(chart backend.ChartConfig, theme Theme) (string, error) {
	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globalChartOptions(theme)...)
	pie.AddSeries(seriesName(chart), toPieData(chart.Data))
	return renderChart(pie)
}

func (r *ChartRenderer) renderScatterChart(chart backend.ChartConfig, theme Theme) (string, error) {
	scatter := charts.NewScatter()
	globals := r.globalChartOptions(theme)
	globals = append(globals,
		charts.WithXAxisOpts(opts.XAxis{Name: chart.XColumn}),
		charts.WithYAxisOpts(opts.YAxis{Name: chart.YColumn}),
	)
	scatter.SetGlobalOptions(globals...)
	scatter.AddSeries(seriesName(chart), toScatterData(chart.Data))
	return renderChart(scatter)
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalChartOptions(theme Theme) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  theme.ChartTheme(),
			Width:  "100%",
			Height: defaultChartHeight,
		}),
		charts.WithColorsOpts(opts.Colors(chartPalette)),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	}
}

func seriesName(chart backend.ChartConfig) string {
	if chart.YColumn != "" {
		return chart.YColumn
	}
	return chart.Title
}

func xAxisLabels(data []map[string]any) []string {
	labels := make([]string, len(data))
	for i, point := range data {
		labels[i] = stringValue(point["x"], fmt.Sprintf("Item %d", i+1))
	}
	return labels
}

func toBarData(data []map[string]any) []opts.BarData {
	out := make([]opts.BarData, len(data))
	for i, point := range data {
		out[i] = opts.BarData{Value: float64Value(point["y"])}
	}
	return out
}

func toLineData(data []map[string]any) []opts.LineData {
	out := make([]opts.LineData, len(data))
	for i, point := range data {
		out[i] = opts.LineData{Value: float64Value(point["y"])}
	}
	return out
}

func toPieData(data []map[string]any) []opts.PieData {
	out := make([]opts.PieData, len(data))
	for i, point := range data {
		name := stringValue(point["name"], "")
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		out[i] = opts.PieData{
			Name:  name,
			Value: float64Value(point["value"]),
		}
	}
	return out
}

func toScatterData(data []map[string]any) []opts.ScatterData {
	out := make([]opts.ScatterData, len(data))
	for i, point := range data {
		out[i] = opts.ScatterData{
			Value: []float64{float64Value(point["x"]), float64Value(point["y"])},
		}
	}
	return out
}

func stringValue(v any, fallback string) string {
	switch val := v.(type) {
	case string:
		if val != "" {
			return val
		}
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	}
	return fallback
}

func float64Value(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		if f, err := val.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return 0
}
