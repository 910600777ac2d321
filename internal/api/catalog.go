package api

import (
	"context"
	"net/http"

	"github.com/propuestas-project/propctl/internal/domain"
)

// ListAreas returns the knowledge area catalog.
//
// Errors: KindAuth, KindRemote, KindUnexpected.
func (c *Client) ListAreas(ctx context.Context) ([]domain.Area, error) {
	return call[[]domain.Area](ctx, c, &request{
		op:       "list areas",
		method:   http.MethodGet,
		path:     "/areas/",
		auth:     authRequired,
		fallback: msgListAreas,
	})
}

// ListSubjects returns the subject catalog. It is the one catalog endpoint
// that needs no session.
//
// Errors: KindRemote, KindUnexpected.
func (c *Client) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	return call[[]domain.Subject](ctx, c, &request{
		op:       "list subjects",
		method:   http.MethodGet,
		path:     "/materias/",
		fallback: msgListSubjects,
	})
}

// GetStudentProfile returns the current student's profile.
//
// Errors: KindAuth, KindRemote (including an expired session), KindUnexpected.
func (c *Client) GetStudentProfile(ctx context.Context) (domain.Profile, error) {
	return c.getProfile(ctx, "get student profile", "/alumnos/perfil/")
}

// GetProfessorProfile returns the current professor's profile.
//
// Errors: KindAuth, KindRemote (including an expired session), KindUnexpected.
func (c *Client) GetProfessorProfile(ctx context.Context) (domain.Profile, error) {
	return c.getProfile(ctx, "get professor profile", "/profesores/perfil/")
}

// UpdateStudentProfile patches the current student's areas.
//
// Errors: KindAuth, KindValidation, KindRemote, KindUnexpected.
func (c *Client) UpdateStudentProfile(ctx context.Context, update domain.ProfileUpdate) (domain.Profile, error) {
	return c.patchProfile(ctx, "update student profile", "/alumnos/perfil/", update)
}

// UpdateProfessorProfile patches the current professor's areas and subjects.
//
// Errors: KindAuth, KindValidation, KindRemote, KindUnexpected.
func (c *Client) UpdateProfessorProfile(ctx context.Context, update domain.ProfileUpdate) (domain.Profile, error) {
	return c.patchProfile(ctx, "update professor profile", "/profesores/perfil/", update)
}

func (c *Client) getProfile(ctx context.Context, op, path string) (domain.Profile, error) {
	return call[domain.Profile](ctx, c, &request{
		op:       op,
		method:   http.MethodGet,
		path:     path,
		auth:     authRequired,
		fallback: msgGetProfile,
	})
}

func (c *Client) patchProfile(ctx context.Context, op, path string, update domain.ProfileUpdate) (domain.Profile, error) {
	return call[domain.Profile](ctx, c, &request{
		op:       op,
		method:   http.MethodPatch,
		path:     path,
		body:     update,
		auth:     authRequired,
		fallback: msgUpdateProfile,
	})
}
