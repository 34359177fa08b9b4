package backend

import (
	"context"
	"io"
	"net/http"
)

// UploadFile streams a tabular file to the backend and returns the dataset
// summary it creates. Parsing and type inference happen server-side.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader) (DatasetSummary, error) {
	var summary DatasetSummary
	if err := c.doMultipart(ctx, "/api/upload/", "file", filename, content, &summary); err != nil {
		return DatasetSummary{}, err
	}
	return summary, nil
}

// ListDatasets returns every dataset owned by the current user.
func (c *Client) ListDatasets(ctx context.Context) ([]DatasetSummary, error) {
	var datasets []DatasetSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/upload/datasets", nil, &datasets); err != nil {
		return nil, err
	}
	return datasets, nil
}

// GetDataset fetches the summary for a single dataset.
func (c *Client) GetDataset(ctx context.Context, datasetID string) (DatasetSummary, error) {
	var summary DatasetSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/upload/dataset/"+datasetID, nil, &summary); err != nil {
		return DatasetSummary{}, err
	}
	return summary, nil
}

// GetPreview fetches a row/column sample for a dataset.
func (c *Client) GetPreview(ctx context.Context, datasetID string) (Preview, error) {
	var preview Preview
	if err := c.doJSON(ctx, http.MethodGet, "/api/upload/dataset/"+datasetID+"/preview", nil, &preview); err != nil {
		return Preview{}, err
	}
	return preview, nil
}

// DeleteDataset removes a dataset and everything derived from it.
func (c *Client) DeleteDataset(ctx context.Context, datasetID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/upload/dataset/"+datasetID, nil, nil)
}
