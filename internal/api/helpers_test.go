package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/propuestas-project/propctl/internal/session"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// fakeBackend records every request and answers with a canned response
type fakeBackend struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newFakeBackend(t *testing.T, status int, body string) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{t: t, status: status, body: body}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		fb.mu.Lock()
		fb.requests = append(fb.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   data,
		})
		status, body := fb.status, fb.body
		fb.mu.Unlock()

		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) respond(status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.status = status
	fb.body = body
}

func (fb *fakeBackend) calls() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return append([]recordedRequest(nil), fb.requests...)
}

func (fb *fakeBackend) last() recordedRequest {
	fb.t.Helper()
	calls := fb.calls()
	require.NotEmpty(fb.t, calls, "expected at least one request")
	return calls[len(calls)-1]
}

func (fb *fakeBackend) lastJSON() map[string]any {
	fb.t.Helper()
	var out map[string]any
	require.NoError(fb.t, json.Unmarshal(fb.last().Body, &out))
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func loggedInStore() *session.MemoryStore {
	return session.NewMemoryStoreWith(map[string]string{
		session.KeyAccessToken:  "access-1",
		session.KeyRefreshToken: "refresh-1",
		session.KeyUserType:     "alumno",
	})
}

func newTestClient(fb *fakeBackend, store session.Store, opts ...Option) *Client {
	return NewClient(fb.server.URL+"/api", store, testLogger(), opts...)
}
