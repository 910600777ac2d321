package domain

import "strings"

// ResultKind tags which shape a SearchResult carries
type ResultKind string

const (
	KindProfessor ResultKind = "professor"
	KindStudent   ResultKind = "student"
)

// Confidence is the recommendation score attached to professor matches
type Confidence struct {
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

// Professor is a professor returned by the professor search
type Professor struct {
	ID               int64       `json:"id"`
	Email            string      `json:"email"`
	Name             string      `json:"nombre"`
	LastNamePaternal string      `json:"apellido_paterno"`
	LastNameMaternal string      `json:"apellido_materno"`
	Subjects         []Subject   `json:"materias"`
	Areas            []Area      `json:"areas_profesor"`
	Department       string      `json:"departamento"`
	Confidence       *Confidence `json:"confidence,omitempty"`
}

// Student is a student returned by the student search
type Student struct {
	ID               int64  `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"nombre"`
	LastNamePaternal string `json:"apellido_paterno"`
	LastNameMaternal string `json:"apellido_materno"`
	Career           string `json:"carrera"`
	Areas            []Area `json:"areas_alumno"`
}

// SearchResult is a tagged union over Professor and Student. Exactly one of
// the pointers is set, matching Kind.
type SearchResult struct {
	Kind      ResultKind `json:"kind"`
	Professor *Professor `json:"professor,omitempty"`
	Student   *Student   `json:"student,omitempty"`
}

// ProfessorResult wraps a professor as a search result
func ProfessorResult(p Professor) SearchResult {
	return SearchResult{Kind: KindProfessor, Professor: &p}
}

// StudentResult wraps a student as a search result
func StudentResult(s Student) SearchResult {
	return SearchResult{Kind: KindStudent, Student: &s}
}

// ID returns the user id of the result
func (r SearchResult) ID() int64 {
	switch r.Kind {
	case KindProfessor:
		return r.Professor.ID
	case KindStudent:
		return r.Student.ID
	}
	return 0
}

// Email returns the contact email of the result
func (r SearchResult) Email() string {
	switch r.Kind {
	case KindProfessor:
		return r.Professor.Email
	case KindStudent:
		return r.Student.Email
	}
	return ""
}

// FullName joins the name and both surnames
func (r SearchResult) FullName() string {
	var parts []string
	switch r.Kind {
	case KindProfessor:
		parts = []string{r.Professor.Name, r.Professor.LastNamePaternal, r.Professor.LastNameMaternal}
	case KindStudent:
		parts = []string{r.Student.Name, r.Student.LastNamePaternal, r.Student.LastNameMaternal}
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// Areas returns the knowledge areas of the result
func (r SearchResult) Areas() []Area {
	switch r.Kind {
	case KindProfessor:
		return r.Professor.Areas
	case KindStudent:
		return r.Student.Areas
	}
	return nil
}

// Role returns the platform role matching the result kind
func (r SearchResult) Role() Role {
	if r.Kind == KindProfessor {
		return RoleProfessor
	}
	return RoleStudent
}
