package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/propuestas-project/propctl/internal/domain"
)

// SearchProfessors finds professors matching a free-text query. The query
// is sent as is; an empty query is left for the backend to interpret.
// Results are tagged as professors.
//
// Errors: KindAuth, KindRemote, KindUnexpected.
func (c *Client) SearchProfessors(ctx context.Context, query string) ([]domain.SearchResult, error) {
	profs, err := call[[]domain.Professor](ctx, c, &request{
		op:       "search professors",
		method:   http.MethodGet,
		path:     "/profesores/buscar/",
		query:    url.Values{"q": {query}},
		auth:     authRequired,
		fallback: msgSearchProfessors,
	})
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, len(profs))
	for i, p := range profs {
		results[i] = domain.ProfessorResult(p)
	}
	return results, nil
}

// SearchStudents finds students by knowledge area. Results are tagged as
// students.
//
// Errors: KindAuth, KindRemote, KindUnexpected.
func (c *Client) SearchStudents(ctx context.Context, query string) ([]domain.SearchResult, error) {
	students, err := call[[]domain.Student](ctx, c, &request{
		op:       "search students",
		method:   http.MethodGet,
		path:     "/alumno/buscar/",
		query:    url.Values{"q": {query}},
		auth:     authRequired,
		fallback: msgSearchStudents,
	})
	if err != nil {
		return nil, err
	}

	results := make([]domain.SearchResult, len(students))
	for i, s := range students {
		results[i] = domain.StudentResult(s)
	}
	return results, nil
}
