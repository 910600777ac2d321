package cmd

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/session"
)

type apiCall struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

type cannedResponse struct {
	status int
	body   string
}

// fakeAPI answers by method and path; anything unrouted gets a 404
type fakeAPI struct {
	server *httptest.Server

	mu     sync.Mutex
	routes map[string]cannedResponse
	calls  []apiCall
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{routes: map[string]cannedResponse{}}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		f.mu.Lock()
		f.calls = append(f.calls, apiCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Body:   string(body),
		})
		resp, ok := f.routes[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if !ok {
			resp = cannedResponse{status: http.StatusNotFound, body: `{"detail":"Not Found"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) handle(method, path string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" /api"+path] = cannedResponse{status: status, body: body}
}

func (f *fakeAPI) requests() []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]apiCall(nil), f.calls...)
}

// cliEnv runs the command tree against a fake backend in a scratch
// directory with its own HOME and session file
type cliEnv struct {
	t           *testing.T
	api         *fakeAPI
	dir         string
	sessionFile string
	stdin       string
}

func setupCLI(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", filepath.Join(dir, "home"))
	t.Chdir(dir)

	e := &cliEnv{
		t:           t,
		api:         newFakeAPI(t),
		dir:         dir,
		sessionFile: filepath.Join(dir, "session.json"),
	}
	t.Setenv("PROPCTL_API_URL", e.api.server.URL+"/api")
	t.Setenv("PROPCTL_SESSION_FILE", e.sessionFile)
	t.Setenv("PROPCTL_LOGGING_LEVEL", "info")
	return e
}

// login seeds the session file as if a login had succeeded
func (e *cliEnv) login(role domain.Role, admin bool) {
	e.t.Helper()
	store, err := session.OpenFileStore(e.sessionFile)
	if err != nil {
		e.t.Fatalf("open session: %v", err)
	}
	err = session.Save(store, domain.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		UserType:     role,
		UserEmail:    "usuario@escuela.mx",
		IsAdmin:      admin,
	})
	if err != nil {
		e.t.Fatalf("save session: %v", err)
	}
}

func (e *cliEnv) storedSession() (domain.Session, bool) {
	e.t.Helper()
	store, err := session.OpenFileStore(e.sessionFile)
	if err != nil {
		e.t.Fatalf("open session: %v", err)
	}
	return session.Load(store)
}

type cliResult struct {
	stdout string
	stderr string
	code   int
}

func (e *cliEnv) run(args ...string) cliResult {
	e.t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(e.stdin))
	rootCmd.SetArgs(append([]string{"--color=never"}, args...))

	code := Execute()
	return cliResult{stdout: out.String(), stderr: errOut.String(), code: code}
}

// resetFlags restores every flag in the tree to its default so state does
// not leak between runs of the shared rootCmd
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, got)
	}
}

func assertExit(t *testing.T, res cliResult, want int) {
	t.Helper()
	if res.code != want {
		t.Fatalf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", res.code, want, res.stdout, res.stderr)
	}
}
