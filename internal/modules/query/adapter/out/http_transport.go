package out

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	queryout "eductl/internal/modules/query/port/out"
)

// HTTPTransport performs API exchanges over net/http. Every request carries
// the current session token as both a `token` header and a bearer
// Authorization header when one is available; without a token the request
// goes out bare and the server decides.
type HTTPTransport struct {
	base   *url.URL
	client *http.Client
	tokens queryout.TokenSource
}

func NewHTTPTransport(baseURL string, timeout time.Duration, tokens queryout.TokenSource) (queryout.Transport, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	return &HTTPTransport{
		base:   base,
		client: &http.Client{Timeout: timeout},
		tokens: tokens,
	}, nil
}

func (t *HTTPTransport) Do(ctx context.Context, req queryout.Request) (queryout.Response, error) {
	target := *t.base
	target.Path = strings.TrimRight(t.base.Path, "/") + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Args) > 0 {
		values := url.Values{}
		for name, value := range req.Args {
			values.Set(name, value)
		}
		target.RawQuery = values.Encode()
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return queryout.Response{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if t.tokens != nil {
		if token := t.tokens.Token(ctx); token != "" {
			httpReq.Header.Set("token", token)
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return queryout.Response{}, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return queryout.Response{}, fmt.Errorf("read response body: %w", err)
	}
	return queryout.Response{StatusCode: resp.StatusCode, Body: payload}, nil
}
