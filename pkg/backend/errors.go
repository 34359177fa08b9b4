package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel states the calling pages branch on. A 404 from get-analysis means
// "not yet analyzed", not a failure; a 401 means the stored token went stale.
var (
	ErrNotFound     = errors.New("backend: not found")
	ErrUnauthorized = errors.New("backend: unauthorized")
)

// APIError is a structured rejection from the backend with its error payload
// already normalized into a single displayable string.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: remote error %d: %s", e.Status, e.Detail)
}

// Unwrap maps well-known statuses onto the sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	}
	return nil
}

// errorBody covers the three error payload shapes the backend emits: a
// string detail, an array of validation errors with msg fields, or a
// generic message field.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type validationItem struct {
	Msg string `json:"msg"`
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{Status: status, Detail: normalizeErrorBody(body)}
}

func normalizeErrorBody(body []byte) string {
	var payload errorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return strings.TrimSpace(string(body))
	}
	if len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			return detail
		}
		var items []validationItem
		if err := json.Unmarshal(payload.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, ", ")
			}
		}
	}
	if payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

// ErrorMessage extracts a displayable string from any client error, falling
// back to the provided message for transport failures and other errors that
// carry no backend payload.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
