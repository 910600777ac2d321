package api

import (
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/propuestas-project/propctl/internal/domain"
)

// studentUpdateFields are the student columns the admin update accepts
var studentUpdateFields = []string{
	"email", "nombre", "apellido_paterno", "apellido_materno", "boleta",
	"carrera", "plan_estudios", "password", "confirm_password", "is_admin",
}

func adminPath(kind domain.AdminKind) string {
	return "/crud/" + string(kind) + "/"
}

func adminItemPath(kind domain.AdminKind, id int64) string {
	return adminPath(kind) + strconv.FormatInt(id, 10) + "/"
}

// coerceIsAdmin converts a form-style "true"/"false" is_admin into a bool
func coerceIsAdmin(rec domain.Record) {
	v, ok := rec["is_admin"]
	if !ok {
		return
	}
	switch b := v.(type) {
	case bool:
	case string:
		rec["is_admin"] = strings.EqualFold(strings.TrimSpace(b), "true")
	default:
		rec["is_admin"] = false
	}
}

// formatAdminRecord shapes an update payload for the given resource. Student
// and professor rows are repackaged with a nested user envelope.
func formatAdminRecord(kind domain.AdminKind, id int64, rec domain.Record) domain.Record {
	switch kind {
	case domain.AdminStudents:
		out := domain.Record{}
		for _, f := range studentUpdateFields {
			if v, ok := rec[f]; ok {
				out[f] = v
			}
		}
		coerceIsAdmin(out)
		out["user"] = nestedUser{
			ID:        id,
			Email:     rec["email"],
			FirstName: rec["nombre"],
			LastName:  rec["apellido_paterno"],
		}
		return out
	case domain.AdminProfessors:
		out := maps.Clone(rec)
		coerceIsAdmin(out)
		out["user"] = nestedUser{
			Email:     rec["email"],
			FirstName: rec["nombre"],
			LastName:  rec["apellido_paterno"],
		}
		return out
	default:
		out := maps.Clone(rec)
		coerceIsAdmin(out)
		return out
	}
}

// ListAdmin returns every row of an admin resource.
//
// Errors: KindAuth, KindRemote, KindUnexpected.
func (c *Client) ListAdmin(ctx context.Context, kind domain.AdminKind) ([]domain.Record, error) {
	return call[[]domain.Record](ctx, c, &request{
		op:       "list " + string(kind),
		method:   http.MethodGet,
		path:     adminPath(kind),
		auth:     authRequired,
		fallback: msgAdminList,
	})
}

// CreateAdmin creates a row. is_admin is sent as a boolean.
//
// Errors: KindAuth, KindValidation, KindRemote, KindUnexpected.
func (c *Client) CreateAdmin(ctx context.Context, kind domain.AdminKind, rec domain.Record) (domain.Record, error) {
	payload := maps.Clone(rec)
	if payload == nil {
		payload = domain.Record{}
	}
	coerceIsAdmin(payload)

	return call[domain.Record](ctx, c, &request{
		op:       "create " + string(kind),
		method:   http.MethodPost,
		path:     adminPath(kind),
		body:     payload,
		auth:     authRequired,
		fallback: msgAdminCreate,
	})
}

// UpdateAdmin replaces a row on its type-specific endpoint.
//
// Errors: KindAuth, KindValidation (including a non-positive id), KindRemote,
// KindUnexpected.
func (c *Client) UpdateAdmin(ctx context.Context, kind domain.AdminKind, id int64, rec domain.Record) (domain.Record, error) {
	op := "update " + string(kind)
	if err := requireID(op, id); err != nil {
		return nil, err
	}

	return call[domain.Record](ctx, c, &request{
		op:       op,
		method:   http.MethodPut,
		path:     adminItemPath(kind, id),
		body:     formatAdminRecord(kind, id, rec),
		auth:     authRequired,
		fallback: msgAdminUpdate,
	})
}

// DeleteAdmin removes a row. The id is checked before the session.
//
// Errors: KindValidation (non-positive id, or backend field errors), KindAuth,
// KindRemote, KindUnexpected.
func (c *Client) DeleteAdmin(ctx context.Context, kind domain.AdminKind, id int64) error {
	op := "delete " + string(kind)
	if err := requireID(op, id); err != nil {
		return err
	}

	_, err := c.send(ctx, &request{
		op:     op,
		method: http.MethodDelete,
		path:   adminItemPath(kind, id),
		auth:   authRequired,
		fallbackFn: func(status int) string {
			return fmt.Sprintf("Error al eliminar: %d - %s", status, http.StatusText(status))
		},
	})
	return err
}

// AdminMetrics returns the dashboard totals.
//
// Errors: KindAuth, KindRemote, KindUnexpected.
func (c *Client) AdminMetrics(ctx context.Context) (domain.Metrics, error) {
	return call[domain.Metrics](ctx, c, &request{
		op:       "admin metrics",
		method:   http.MethodGet,
		path:     "/crud/metrics/",
		auth:     authRequired,
		fallback: msgAdminMetrics,
	})
}

// AdminMetricsByDate returns metrics between two dates. Dates are passed
// through in whatever format the caller uses.
//
// Errors: KindAuth, KindRemote, KindUnexpected.
func (c *Client) AdminMetricsByDate(ctx context.Context, start, end string) (domain.Metrics, error) {
	return call[domain.Metrics](ctx, c, &request{
		op:       "admin metrics by date",
		method:   http.MethodGet,
		path:     "/crud/metrics/by-date/",
		query:    url.Values{"start": {start}, "end": {end}},
		auth:     authRequired,
		fallback: msgAdminMetrics,
	})
}
