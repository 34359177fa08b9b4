package backend

import (
	"context"
	"net/http"
)

type chatQuery struct {
	DatasetID string `json:"dataset_id"`
	Message   string `json:"message"`
}

type chatHistoryResponse struct {
	SessionID string        `json:"session_id,omitempty"`
	Messages  []ChatMessage `json:"messages"`
}

// SendChatMessage submits one natural-language query about a dataset.
func (c *Client) SendChatMessage(ctx context.Context, datasetID, message string) (ChatReply, error) {
	var reply ChatReply
	query := chatQuery{DatasetID: datasetID, Message: message}
	if err := c.doJSON(ctx, http.MethodPost, "/api/chat/query", query, &reply); err != nil {
		return ChatReply{}, err
	}
	return reply, nil
}

// GetChatHistory fetches the full transcript for a dataset. A dataset with
// no conversation yet returns an empty slice, not an error.
func (c *Client) GetChatHistory(ctx context.Context, datasetID string) ([]ChatMessage, error) {
	var resp chatHistoryResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/chat/history/"+datasetID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// ClearChatHistory deletes the transcript for a dataset.
func (c *Client) ClearChatHistory(ctx context.Context, datasetID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/chat/history/"+datasetID, nil, nil)
}
