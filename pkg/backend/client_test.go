package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLoginSendsFormFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Fatalf("expected form content type, got %s", ct)
		}
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("login must not carry a bearer header")
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostForm.Get("username"); got != "ana@example.com" {
			t.Fatalf("expected email as username, got %s", got)
		}
		if got := r.PostForm.Get("password"); got != "hunter22" {
			t.Fatalf("unexpected password %s", got)
		}
		_ = json.NewEncoder(w).Encode(Token{AccessToken: "tok-1", TokenType: "bearer"})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	token, err := client.Login(context.Background(), "ana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token.AccessToken != "tok-1" {
		t.Fatalf("unexpected token %#v", token)
	}
}

func TestWithTokenAttachesBearerHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-2" {
			t.Fatalf("expected bearer header, got %q", got)
		}
		_ = json.NewEncoder(w).Encode([]DatasetSummary{})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := client.WithToken("tok-2").ListDatasets(context.Background()); err != nil {
		t.Fatalf("list datasets: %v", err)
	}
}

func TestUploadFileSendsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/upload/" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "sales.csv" {
			t.Fatalf("unexpected filename %s", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "a,b\n1,2\n" {
			t.Fatalf("unexpected file content %q", content)
		}
		_ = json.NewEncoder(w).Encode(DatasetSummary{
			ID:         "d1",
			Filename:   "sales.csv",
			NumRows:    120,
			NumColumns: 5,
			UploadedAt: time.Now().UTC(),
		})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	summary, err := client.WithToken("tok").UploadFile(context.Background(), "sales.csv", strings.NewReader("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if summary.ID != "d1" || summary.NumRows != 120 || summary.NumColumns != 5 {
		t.Fatalf("unexpected summary %#v", summary)
	}
}

func TestGetAnalysisNotFoundSignalsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Analysis not found. Please run analysis first."}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.WithToken("tok").GetAnalysis(context.Background(), "d9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := ErrorMessage(err, "fallback"); got != "Analysis not found. Please run analysis first." {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestStaleTokenSignalsUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.WithToken("stale").CurrentUser(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGetChatHistoryEmptySession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat/history/d1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"messages":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	messages, err := client.WithToken("tok").GetChatHistory(context.Background(), "d1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty history, got %#v", messages)
	}
}

func TestSendChatMessagePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var query chatQuery
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			t.Fatalf("decode query: %v", err)
		}
		if query.DatasetID != "d1" || query.Message != "What is the average value?" {
			t.Fatalf("unexpected query %#v", query)
		}
		_ = json.NewEncoder(w).Encode(ChatReply{Message: "The average is 42."})
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	reply, err := client.WithToken("tok").SendChatMessage(context.Background(), "d1", "What is the average value?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if reply.Message != "The average is 42." {
		t.Fatalf("unexpected reply %#v", reply)
	}
}

func TestRequestCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	t.Cleanup(server.Close)

	client, err := New(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()
	if _, err := client.WithToken("tok").ListDatasets(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
