package backend

import "time"

// Token is the credential issued by the backend on login/register. The
// frontend treats it as opaque; it is only ever echoed back as a bearer
// header.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// User mirrors the profile returned by /api/auth/me.
type User struct {
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// DatasetSummary describes one uploaded dataset as tracked by the backend.
type DatasetSummary struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	NumRows    int       `json:"num_rows"`
	NumColumns int       `json:"num_columns"`
	UploadedAt time.Time `json:"uploaded_at"`
	IsAnalyzed bool      `json:"is_analyzed"`
}

// Preview carries a row/column sample of a dataset. Row values may be nil
// for missing cells.
type Preview struct {
	Columns   []string         `json:"columns"`
	Rows      []map[string]any `json:"rows"`
	TotalRows int              `json:"total_rows"`
}

// ChartConfig is a backend-provided chart descriptor: a type tag plus a
// finite, pre-aggregated data sequence. The frontend renders it as received
// and never aggregates, bins, or scales client-side.
type ChartConfig struct {
	ID          string           `json:"id"`
	ChartType   string           `json:"chart_type"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	XColumn     string           `json:"x_column,omitempty"`
	YColumn     string           `json:"y_column,omitempty"`
	Data        []map[string]any `json:"data"`
}

// Insight is a backend-generated natural-language observation.
type Insight struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Importance  string `json:"importance"`
}

// AnalysisResult bundles everything the dashboard renders for one dataset.
type AnalysisResult struct {
	ID           string         `json:"id"`
	DatasetID    string         `json:"dataset_id"`
	QualityScore float64        `json:"quality_score"`
	Insights     []Insight      `json:"insights"`
	Charts       []ChartConfig  `json:"charts"`
	KPIs         map[string]any `json:"kpis"`
	CreatedAt    time.Time      `json:"created_at"`
}

// QualityIssue flags a single data quality problem in one column.
type QualityIssue struct {
	Column      string  `json:"column"`
	IssueType   string  `json:"issue_type"`
	Severity    string  `json:"severity"`
	Description string  `json:"description"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage,omitempty"`
}

// ColumnStatistics mirrors the per-column statistical summary.
type ColumnStatistics struct {
	Column string   `json:"column"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Mode   any      `json:"mode,omitempty"`
	Std    *float64 `json:"std,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Q25    *float64 `json:"q25,omitempty"`
	Q75    *float64 `json:"q75,omitempty"`
}

// QualityReport is the detailed quality view behind the quality endpoint.
type QualityReport struct {
	QualityScore  float64            `json:"quality_score"`
	QualityIssues []QualityIssue     `json:"quality_issues"`
	Statistics    []ColumnStatistics `json:"statistics"`
}

// ChatMessage is one entry in a dataset conversation. Messages are ordered
// and append-only; the backend persists the full transcript.
type ChatMessage struct {
	Role        string         `json:"role"`
	Content     string         `json:"content"`
	Timestamp   time.Time      `json:"timestamp"`
	QueryResult any            `json:"query_result,omitempty"`
	ChartConfig map[string]any `json:"chart_config,omitempty"`
}

// ChatReply is the backend's answer to one chat query.
type ChatReply struct {
	Message     string         `json:"message"`
	Data        any            `json:"data,omitempty"`
	ChartConfig map[string]any `json:"chart_config,omitempty"`
}
