package cmd

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/output"
)

func TestCatalog_FetchesBothLists(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/areas/", http.StatusOK, `[{"id": 3, "nombre": "Inteligencia artificial"}]`)
	e.api.handle(http.MethodGet, "/materias/", http.StatusOK, `[{"id": 12, "nombre": "Compiladores"}]`)

	res := e.run("catalog", "--json")
	assertExit(t, res, output.ExitSuccess)

	var got struct {
		Areas    []domain.Area    `json:"areas"`
		Subjects []domain.Subject `json:"materias"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}
	if len(got.Areas) != 1 || got.Areas[0].Name != "Inteligencia artificial" {
		t.Errorf("areas = %+v", got.Areas)
	}
	if len(got.Subjects) != 1 || got.Subjects[0].ID != 12 {
		t.Errorf("subjects = %+v", got.Subjects)
	}
}

func TestCatalog_FailureStopsOutput(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/areas/", http.StatusOK, `[]`)
	e.api.handle(http.MethodGet, "/materias/", http.StatusInternalServerError, ``)

	res := e.run("catalog")
	assertExit(t, res, output.ExitAPIError)
	assertContains(t, res.stderr, "Error inesperado al obtener las materias")
}

func TestProfileShow_RoutesByRole(t *testing.T) {
	tests := []struct {
		role domain.Role
		path string
	}{
		{domain.RoleStudent, "/alumnos/perfil/"},
		{domain.RoleProfessor, "/profesores/perfil/"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			e := setupCLI(t)
			e.login(tt.role, false)
			e.api.handle(http.MethodGet, tt.path, http.StatusOK, `{"email": "usuario@escuela.mx"}`)

			res := e.run("profile", "show")
			assertExit(t, res, output.ExitSuccess)
			assertContains(t, res.stdout, "usuario@escuela.mx")
		})
	}
}

func TestProfileUpdate(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodPatch, "/alumnos/perfil/", http.StatusOK, `{}`)

	res := e.run("profile", "update", "--area-id", "3", "--custom-area", "Robótica")
	assertExit(t, res, output.ExitSuccess)

	body := decodeBody(t, e.api.requests()[0])
	ids, _ := body["areas_ids"].([]any)
	if len(ids) != 1 || ids[0] != float64(3) {
		t.Errorf("areas_ids = %v", body["areas_ids"])
	}
	if _, ok := body["materias_ids"]; ok {
		t.Error("materias_ids should be omitted when not given")
	}

	res = e.run("profile", "update", "--subject-id", "1")
	assertExit(t, res, output.ExitUsageError)

	res = e.run("profile", "update")
	assertExit(t, res, output.ExitUsageError)
}

func TestProfileUpdate_ClearLists(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleProfessor, false)
	e.api.handle(http.MethodPatch, "/profesores/perfil/", http.StatusOK, `{}`)

	res := e.run("profile", "update", "--clear-areas", "--clear-subjects")
	assertExit(t, res, output.ExitSuccess)

	body := decodeBody(t, e.api.requests()[0])
	for _, key := range []string{"areas_ids", "areas_custom", "materias_ids"} {
		list, ok := body[key].([]any)
		if !ok || len(list) != 0 {
			t.Errorf("%s = %#v, want an empty array", key, body[key])
		}
	}
}

func TestChatOpen(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodPost, "/chat/conversations/create_or_get_conversation/", http.StatusOK, `{"id": 8}`)

	res := e.run("chat", "open", "21")
	assertExit(t, res, output.ExitSuccess)
	assertContains(t, res.stdout, "Conversación abierta (id 8)")

	res = e.run("chat", "open", "0")
	assertExit(t, res, output.ExitValidationError)
	assertContains(t, res.stderr, "ID no proporcionado")
}

func TestReport_WorksWithoutSession(t *testing.T) {
	e := setupCLI(t)
	e.api.handle(http.MethodPost, "/reports/problem/", http.StatusCreated, `{"ok": true}`)

	res := e.run("report", "--description", "No carga", "--email", "anon@escuela.mx")
	assertExit(t, res, output.ExitSuccess)

	call := e.api.requests()[0]
	if call.Auth != "" {
		t.Errorf("expected no authorization header, got %q", call.Auth)
	}
	body := decodeBody(t, call)
	if body["type"] != "general" || body["email"] != "anon@escuela.mx" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestReport_UsesSessionEmail(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodPost, "/reports/problem/", http.StatusCreated, `{}`)

	res := e.run("report", "--type", "bug", "--description", "No carga")
	assertExit(t, res, output.ExitSuccess)

	call := e.api.requests()[0]
	if call.Auth != "Bearer access-1" {
		t.Errorf("authorization = %q", call.Auth)
	}
	if body := decodeBody(t, call); body["email"] != "usuario@escuela.mx" {
		t.Errorf("email = %v", body["email"])
	}
}

func TestPasswordReset(t *testing.T) {
	e := setupCLI(t)
	e.api.handle(http.MethodPost, "/usuarios/reset-password/tok-9/", http.StatusOK, `{"message":"Listo"}`)

	res := e.run("password", "reset", "tok-9", "--new", "nueva", "--confirm", "nueva")
	assertExit(t, res, output.ExitSuccess)
	assertContains(t, res.stdout, "Listo")
	assertContains(t, res.stdout, "See also: propctl login")
}

func TestUnreachableBackend(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.server.Close()

	res := e.run("proposals", "list")
	assertExit(t, res, output.ExitAPIError)
	assertContains(t, res.stderr, "PROPCTL_API_URL")
}
