package out_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	out "eductl/internal/modules/query/adapter/out"
	queryout "eductl/internal/modules/query/port/out"
)

type staticTokens string

func (s staticTokens) Token(context.Context) string { return string(s) }

func TestHTTPTransportAttachesSessionToken(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("token"); got != "tok-1" {
			t.Errorf("expected token header, got %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if r.URL.Path != "/api/v1/lesson" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("classLevel"); got != "9" {
			t.Errorf("expected classLevel arg, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	transport, err := out.NewHTTPTransport(server.URL+"/api/v1/", time.Second, staticTokens("tok-1"))
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	resp, err := transport.Do(context.Background(), queryout.Request{
		Method: http.MethodGet,
		Path:   "/lesson",
		Args:   map[string]string{"classLevel": "9"},
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestHTTPTransportOmitsHeadersWithoutToken(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("token") != "" || r.Header.Get("Authorization") != "" {
			t.Errorf("logged-out request must carry no auth headers")
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"login required"}`))
	}))
	defer server.Close()

	transport, err := out.NewHTTPTransport(server.URL, time.Second, staticTokens(""))
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	resp, err := transport.Do(context.Background(), queryout.Request{Method: http.MethodGet, Path: "/lesson"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	// Non-2xx is not a transport error; status interpretation belongs to the
	// cache layer.
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"message":"login required"}` {
		t.Fatalf("body must pass through, got %s", resp.Body)
	}
}

func TestHTTPTransportSendsJSONBody(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"title":"Algebra"}` {
			t.Errorf("unexpected body %s", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	transport, err := out.NewHTTPTransport(server.URL, time.Second, staticTokens("tok-1"))
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	resp, err := transport.Do(context.Background(), queryout.Request{
		Method: http.MethodPost,
		Path:   "/lesson",
		Body:   []byte(`{"title":"Algebra"}`),
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestHTTPTransportRejectsRelativeBaseURL(t *testing.T) {
	t.Parallel()
	if _, err := out.NewHTTPTransport("api.example.com", time.Second, nil); err == nil {
		t.Fatalf("expected error for base url without scheme")
	}
}
