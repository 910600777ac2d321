package cmd

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/output"
)

const professorsBody = `[
  {"id": 21, "email": "luis@escuela.mx", "nombre": "Luis", "apellido_paterno": "Ríos",
   "apellido_materno": "Paz", "departamento": "Computación",
   "materias": [{"id": 1, "nombre": "Compiladores"}],
   "areas_profesor": [{"id": 3, "nombre": "IA"}],
   "confidence": {"score": 0.82, "level": "alta"}}
]`

const studentsBody = `[
  {"id": 31, "email": "ana@escuela.mx", "nombre": "Ana", "apellido_paterno": "López",
   "carrera": "ISC", "areas_alumno": []}
]`

func TestSearch_StudentFindsProfessors(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/profesores/buscar/", http.StatusOK, professorsBody)

	res := e.run("search", "redes", "neuronales")
	assertExit(t, res, output.ExitSuccess)
	assertContains(t, res.stdout, "Buscando...")
	assertContains(t, res.stdout, "[1] Luis Ríos Paz  [Profesor]")
	assertContains(t, res.stdout, "Coincidencia: 82% (alta)")

	call := e.api.requests()[0]
	if call.Query != "q=redes+neuronales" {
		t.Errorf("query = %q", call.Query)
	}
}

func TestSearch_ProfessorFindsStudents(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleProfessor, false)
	e.api.handle(http.MethodGet, "/alumno/buscar/", http.StatusOK, studentsBody)

	res := e.run("search", "IA")
	assertExit(t, res, output.ExitSuccess)
	assertContains(t, res.stdout, "Ana López")
	assertContains(t, res.stdout, output.TextStudentNoAreas)
}

func TestSearch_EmptyQueryIsSent(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/profesores/buscar/", http.StatusOK, `[]`)

	res := e.run("search")
	assertExit(t, res, output.ExitSuccess)
	assertContains(t, res.stdout, output.TextNoResults)

	if q := e.api.requests()[0].Query; q != "q=" {
		t.Errorf("query = %q, want q=", q)
	}
}

func TestSearch_JSON(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/profesores/buscar/", http.StatusOK, professorsBody)

	res := e.run("search", "--json", "IA")
	assertExit(t, res, output.ExitSuccess)

	var results []domain.SearchResult
	if err := json.Unmarshal([]byte(res.stdout), &results); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, res.stdout)
	}
	if len(results) != 1 || results[0].Kind != domain.KindProfessor || results[0].ID() != 21 {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestSearch_ErrorIsReportedOnce(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/profesores/buscar/", http.StatusInternalServerError, `{"error":"Servicio no disponible"}`)

	res := e.run("search", "IA")
	assertExit(t, res, output.ExitAPIError)
	assertContains(t, res.stderr, "[ERROR] Servicio no disponible")
	if n := strings.Count(res.stderr, "[ERROR]"); n != 1 {
		t.Errorf("expected the error once, found %d times:\n%s", n, res.stderr)
	}
}

func TestSearch_WithoutSession(t *testing.T) {
	e := setupCLI(t)

	res := e.run("search", "IA")
	assertExit(t, res, output.ExitAuthError)
	if n := len(e.api.requests()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestSearch_ContactOpensConversation(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/profesores/buscar/", http.StatusOK, professorsBody)
	e.api.handle(http.MethodPost, "/chat/conversations/create_or_get_conversation/", http.StatusOK,
		`{"id": 77, "name": "", "participants": [], "is_group": false}`)

	res := e.run("search", "IA", "--contact", "1")
	assertExit(t, res, output.ExitSuccess)
	assertContains(t, res.stdout, "Conversación con Luis Ríos Paz abierta (id 77)")
	assertContains(t, res.stderr, "Contactando a Luis Ríos Paz")

	calls := e.api.requests()
	body := decodeBody(t, calls[len(calls)-1])
	ids, _ := body["participant_ids"].([]any)
	if len(ids) != 1 || ids[0] != float64(21) {
		t.Errorf("participant_ids = %v", body["participant_ids"])
	}
}

func TestSearch_ContactOutOfRange(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/profesores/buscar/", http.StatusOK, professorsBody)

	res := e.run("search", "IA", "--contact", "5")
	assertExit(t, res, output.ExitUsageError)
	assertContains(t, res.stderr, "no result number 5")
}

func TestSearch_Interactive(t *testing.T) {
	e := setupCLI(t)
	e.login(domain.RoleStudent, false)
	e.api.handle(http.MethodGet, "/profesores/buscar/", http.StatusOK, professorsBody)
	e.api.handle(http.MethodPost, "/chat/conversations/create_or_get_conversation/", http.StatusOK, `{"id": 5}`)
	e.stdin = "IA\n:c 9\n:c 1\n:q\n"

	res := e.run("search", "--interactive")
	assertExit(t, res, output.ExitSuccess)
	assertContains(t, res.stdout, "Búsqueda de profesores")
	assertContains(t, res.stdout, "[1] Luis Ríos Paz")
	assertContains(t, res.stderr, "no result number 9")
	assertContains(t, res.stdout, "Conversación con Luis Ríos Paz abierta (id 5)")

	var searches int
	for _, c := range e.api.requests() {
		if c.Path == "/api/profesores/buscar/" {
			searches++
		}
	}
	if searches != 1 {
		t.Errorf("expected 1 search request, got %d", searches)
	}
}
