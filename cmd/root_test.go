package cmd

import (
	"strings"
	"testing"

	"github.com/propuestas-project/propctl/internal/output"
)

func TestRootCmd_Help(t *testing.T) {
	e := setupCLI(t)

	res := e.run("--help")
	assertExit(t, res, output.ExitSuccess)
	if !strings.Contains(res.stdout, "propctl") {
		t.Errorf("expected help output to contain 'propctl', got:\n%s", res.stdout)
	}
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	e := setupCLI(t)

	res := e.run("nonexistent-command")
	if res.code == output.ExitSuccess {
		t.Fatal("expected a failure exit code for unknown command")
	}
	assertContains(t, res.stderr, "unknown command")
}

func TestRootCmd_SubcommandsList(t *testing.T) {
	e := setupCLI(t)

	res := e.run("--help")
	assertExit(t, res, output.ExitSuccess)

	for _, cmd := range []string{"login", "logout", "register", "search", "proposals", "catalog", "profile", "admin", "config", "version"} {
		if !strings.Contains(res.stdout, cmd) {
			t.Errorf("expected help output to list %q command, got:\n%s", cmd, res.stdout)
		}
	}
}

func TestRootCmd_InvalidColorMode(t *testing.T) {
	e := setupCLI(t)

	res := e.run("--color=sometimes", "version")
	assertExit(t, res, output.ExitUsageError)
	assertContains(t, res.stderr, "invalid color mode")
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	e := setupCLI(t)
	t.Setenv("PROPCTL_API_URL", "not a url")

	res := e.run("version")
	assertExit(t, res, output.ExitConfigError)
	assertContains(t, res.stderr, "invalid configuration")
}

func TestRootCmd_QuietSuppressesInfo(t *testing.T) {
	e := setupCLI(t)

	res := e.run("--quiet", "session", "show")
	assertExit(t, res, output.ExitSuccess)
	if res.stdout != "" {
		t.Errorf("expected no output in quiet mode, got:\n%s", res.stdout)
	}
}

func TestRootCmd_VerboseLogsConfig(t *testing.T) {
	e := setupCLI(t)

	res := e.run("-v", "version", "--short")
	assertExit(t, res, output.ExitSuccess)
	assertContains(t, res.stderr, "configuration loaded")
	assertContains(t, res.stderr, e.api.server.URL)
}
