package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/like-mike/listener-relay/chat"
	"github.com/like-mike/listener-relay/provider"
)

const testOrigin = "http://localhost:3000"

// mockProvider implements provider.CompletionProvider for testing routes
type mockProvider struct {
	requests []*provider.CompletionRequest
	text     string
	err      error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) GetCompletions(_ context.Context, req *provider.CompletionRequest) (*provider.CompletionResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &provider.CompletionResponse{Text: m.text}, nil
}

func doRequest(t *testing.T, p *mockProvider, req *http.Request) (*http.Response, map[string]any) {
	t.Helper()
	app := SetupApp(chat.NewRelay(p, "persona"), testOrigin)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(raw) == 0 {
		return resp, nil
	}

	var body map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp, body
}

func postChat(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestChat_Success(t *testing.T) {
	p := &mockProvider{text: "It sounds like today has been heavy."}

	resp, body := doRequest(t, p, postChat(`{"message": "I feel sad"}`))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if body["response"] != "It sounds like today has been heavy." {
		t.Errorf("unexpected response field: %v", body["response"])
	}
	if _, ok := body["error"]; ok {
		t.Errorf("expected no error field on success, got %v", body["error"])
	}
	if len(p.requests) != 1 {
		t.Fatalf("expected exactly one outbound call, got %d", len(p.requests))
	}
	msgs := p.requests[0].Messages
	if len(msgs) != 2 || msgs[0].Role != provider.RoleSystem || msgs[0].Content != "persona" {
		t.Fatalf("expected system persona first, got %+v", msgs)
	}
	if msgs[1].Role != provider.RoleUser || msgs[1].Content != "I feel sad" {
		t.Errorf("expected user content %q, got %+v", "I feel sad", msgs[1])
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestChat_ProviderError(t *testing.T) {
	p := &mockProvider{err: errors.New("error, status code: 429, status: 429 Too Many Requests, message: Rate limit reached")}

	resp, body := doRequest(t, p, postChat(`{"message": "hello"}`))

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
	if body["error"] != p.err.Error() {
		t.Errorf("expected error %q, got %v", p.err.Error(), body["error"])
	}
	if _, ok := body["response"]; ok {
		t.Errorf("expected no response field on failure, got %v", body["response"])
	}
	if len(p.requests) != 1 {
		t.Errorf("expected one outbound call and no retry, got %d", len(p.requests))
	}
}

func TestChat_MissingMessageIsEmpty(t *testing.T) {
	for _, payload := range []string{`{}`, `{"message": ""}`, `{"other": 1}`} {
		t.Run(payload, func(t *testing.T) {
			p := &mockProvider{text: "ok"}

			resp, body := doRequest(t, p, postChat(payload))

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
			}
			if body["response"] != "ok" {
				t.Errorf("unexpected response field: %v", body["response"])
			}
			if len(p.requests) != 1 {
				t.Fatalf("expected exactly one outbound call, got %d", len(p.requests))
			}
			if got := p.requests[0].Messages[1].Content; got != "" {
				t.Errorf("expected empty user content, got %q", got)
			}
		})
	}
}

func TestChat_InvalidJSON(t *testing.T) {
	p := &mockProvider{text: "unused"}

	resp, body := doRequest(t, p, postChat(`not json`))

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, resp.StatusCode)
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Errorf("expected error message, got %v", body)
	}
	if len(p.requests) != 0 {
		t.Errorf("expected no outbound call, got %d", len(p.requests))
	}
}

func TestChat_Options(t *testing.T) {
	tests := []struct {
		name      string
		origin    string
		preflight bool
	}{
		{"bare options", "", false},
		{"preflight from allowed origin", testOrigin, true},
		{"preflight from other origin", "http://evil.example", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := &mockProvider{text: "unused"}
			req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			resp, body := doRequest(t, p, req)

			if resp.StatusCode != http.StatusNoContent {
				t.Fatalf("expected status %d, got %d", http.StatusNoContent, resp.StatusCode)
			}
			if body != nil {
				t.Errorf("expected empty body, got %v", body)
			}
			if len(p.requests) != 0 {
				t.Errorf("expected no outbound call, got %d", len(p.requests))
			}

			allow := resp.Header.Get("Access-Control-Allow-Origin")
			switch tc.origin {
			case testOrigin:
				if allow != testOrigin {
					t.Errorf("expected allow origin %q, got %q", testOrigin, allow)
				}
			case "":
			default:
				if allow == tc.origin || allow == "*" {
					t.Errorf("origin %q must not be allowed, got %q", tc.origin, allow)
				}
			}
		})
	}
}

func TestChat_SimpleRequestFromAllowedOrigin(t *testing.T) {
	p := &mockProvider{text: "ok"}
	req := postChat(`{"message": "hi"}`)
	req.Header.Set("Origin", testOrigin)

	resp, _ := doRequest(t, p, req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != testOrigin {
		t.Errorf("expected allow origin %q, got %q", testOrigin, got)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	app := SetupApp(chat.NewRelay(&mockProvider{}, "persona"), testOrigin)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(raw) != "ok" {
		t.Fatalf("unexpected health response: %d %q", resp.StatusCode, raw)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	raw, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if !strings.Contains(string(raw), "http_requests_total") {
		t.Error("expected http_requests_total in metrics output")
	}
}

func TestChat_LargeMessage(t *testing.T) {
	p := &mockProvider{text: "ok"}
	message := strings.Repeat("a", 5<<20)

	resp, body := doRequest(t, p, postChat(`{"message":"`+message+`"}`))

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if body["response"] != "ok" {
		t.Errorf("unexpected response field: %v", body["response"])
	}
	if len(p.requests) != 1 {
		t.Fatalf("expected exactly one outbound call, got %d", len(p.requests))
	}
	if got := p.requests[0].Messages[1].Content; got != message {
		t.Errorf("expected the full %d byte message, got %d bytes", len(message), len(got))
	}
}
