package backend

import (
	"context"
	"net/http"
)

// AnalyzeDataset runs (or re-runs) the backend analysis for a dataset and
// returns the fresh result.
func (c *Client) AnalyzeDataset(ctx context.Context, datasetID string) (AnalysisResult, error) {
	var result AnalysisResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/analysis/analyze/"+datasetID, nil, &result); err != nil {
		return AnalysisResult{}, err
	}
	return result, nil
}

// GetAnalysis fetches a previously computed analysis. A dataset that was
// never analyzed yields ErrNotFound, which callers treat as a state rather
// than a failure.
func (c *Client) GetAnalysis(ctx context.Context, datasetID string) (AnalysisResult, error) {
	var result AnalysisResult
	if err := c.doJSON(ctx, http.MethodGet, "/api/analysis/"+datasetID, nil, &result); err != nil {
		return AnalysisResult{}, err
	}
	return result, nil
}

// GetQuality fetches the detailed quality report for an analyzed dataset.
func (c *Client) GetQuality(ctx context.Context, datasetID string) (QualityReport, error) {
	var report QualityReport
	if err := c.doJSON(ctx, http.MethodGet, "/api/analysis/"+datasetID+"/quality", nil, &report); err != nil {
		return QualityReport{}, err
	}
	return report, nil
}

type insightsResponse struct {
	Insights []Insight `json:"insights"`
}

// GetInsights fetches just the insight records for an analyzed dataset.
func (c *Client) GetInsights(ctx context.Context, datasetID string) ([]Insight, error) {
	var resp insightsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/analysis/"+datasetID+"/insights", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Insights, nil
}
