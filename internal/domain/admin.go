package domain

import "fmt"

// AdminKind names a resource managed through the admin CRUD endpoints
type AdminKind string

const (
	AdminStudents   AdminKind = "alumnos"
	AdminProfessors AdminKind = "profesores"
	AdminProposals  AdminKind = "propuestas"
)

// AdminKinds lists every admin resource in display order
var AdminKinds = []AdminKind{AdminStudents, AdminProfessors, AdminProposals}

// ParseAdminKind validates an admin resource name
func ParseAdminKind(s string) (AdminKind, error) {
	for _, k := range AdminKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown admin resource %q (must be alumnos, profesores, or propuestas)", s)
}

// Record is a generic admin row. Admin tables expose whatever columns the
// backend serializes, so rows stay untyped.
type Record map[string]any

// Metrics is the admin dashboard metrics document
type Metrics map[string]any
