package backend

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeErrorBody(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "string detail",
			body: `{"detail":"Dataset not found"}`,
			want: "Dataset not found",
		},
		{
			name: "validation array",
			body: `{"detail":[{"msg":"field required"},{"msg":"value is not a valid email"}]}`,
			want: "field required, value is not a valid email",
		},
		{
			name: "generic message",
			body: `{"message":"internal error"}`,
			want: "internal error",
		},
		{
			name: "unstructured body",
			body: `gateway timeout`,
			want: "gateway timeout",
		},
		{
			name: "empty validation array falls back to raw body",
			body: `{"detail":[]}`,
			want: `{"detail":[]}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeErrorBody([]byte(tc.body)); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestErrorMessageFallback(t *testing.T) {
	transport := fmt.Errorf("backend: http request: %w", errors.New("connection refused"))
	if got := ErrorMessage(transport, "Upload failed"); got != "Upload failed" {
		t.Fatalf("expected fallback for transport errors, got %q", got)
	}
	apiErr := newAPIError(400, []byte(`{"detail":"File type not supported"}`))
	if got := ErrorMessage(apiErr, "Upload failed"); got != "File type not supported" {
		t.Fatalf("expected backend detail, got %q", got)
	}
}

func TestAPIErrorSentinels(t *testing.T) {
	notFound := newAPIError(404, []byte(`{"detail":"Analysis not found"}`))
	if !errors.Is(notFound, ErrNotFound) {
		t.Fatalf("404 should unwrap to ErrNotFound")
	}
	unauthorized := newAPIError(401, []byte(`{"detail":"Could not validate credentials"}`))
	if !errors.Is(unauthorized, ErrUnauthorized) {
		t.Fatalf("401 should unwrap to ErrUnauthorized")
	}
	rejected := newAPIError(422, []byte(`{"detail":"bad input"}`))
	if errors.Is(rejected, ErrNotFound) || errors.Is(rejected, ErrUnauthorized) {
		t.Fatalf("422 should not match sentinels")
	}
}
