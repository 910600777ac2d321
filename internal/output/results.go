package output

import (
	"fmt"
	"strings"

	"github.com/propuestas-project/propctl/internal/domain"
	"github.com/propuestas-project/propctl/internal/search"
)

// Search screen texts
const (
	TextSearching        = "Buscando..."
	TextNoResults        = "No se encontraron resultados para tu búsqueda"
	TextNoResultsHint    = "Intenta con otros términos o áreas de conocimiento"
	TextNoSubjects       = "No hay materias registradas"
	TextNoAreas          = "No hay áreas de conocimiento registradas"
	TextProfessorNoAreas = "El profesor aún no ha especificado sus áreas de especialización"
	TextStudentNoAreas   = "El alumno aún no ha especificado sus áreas de interés"
)

// RenderSearch prints a workflow state. Idle prints nothing.
func (p *Printer) RenderSearch(s search.State) {
	switch s.Status {
	case search.StatusLoading:
		p.Info(TextSearching)
	case search.StatusError:
		p.Error("%s", s.Message)
	case search.StatusSuccess:
		if len(s.Results) == 0 {
			p.Print("%s", TextNoResults)
			p.Print("%s", p.Dim(TextNoResultsHint))
			return
		}
		for i, r := range s.Results {
			p.RenderResult(i+1, r)
		}
	}
}

// RenderResult prints one search result card. n is the number the user
// types to contact the result.
func (p *Printer) RenderResult(n int, r domain.SearchResult) {
	if p.quiet {
		return
	}

	label := r.Role().Label()
	fmt.Fprintf(p.out, "\n%s %s  %s\n", p.Dim(fmt.Sprintf("[%d]", n)), p.Bold(r.FullName()), p.Tag(label))
	fmt.Fprintf(p.out, "  Correo: %s\n", r.Email())

	switch r.Kind {
	case domain.KindProfessor:
		prof := r.Professor
		if prof.Department != "" {
			fmt.Fprintf(p.out, "  Departamento: %s\n", prof.Department)
		}
		if len(prof.Subjects) == 0 {
			fmt.Fprintf(p.out, "  Materias: %s\n", p.Dim(TextNoSubjects))
		} else {
			names := make([]string, len(prof.Subjects))
			for i, s := range prof.Subjects {
				names[i] = s.Name
			}
			fmt.Fprintf(p.out, "  Materias: %s\n", strings.Join(names, ", "))
		}
		if prof.Confidence != nil {
			fmt.Fprintf(p.out, "  Coincidencia: %.0f%% (%s)\n", prof.Confidence.Score*100, prof.Confidence.Level)
		}
	case domain.KindStudent:
		if r.Student.Career != "" {
			fmt.Fprintf(p.out, "  Carrera: %s\n", r.Student.Career)
		}
	}

	areas := r.Areas()
	if len(areas) == 0 {
		fmt.Fprintf(p.out, "  Áreas de conocimiento: %s\n", p.Dim(TextNoAreas))
		fmt.Fprintf(p.out, "    %s\n", p.Dim(noAreasHint(r.Kind)))
		return
	}
	tags := make([]string, len(areas))
	for i, a := range areas {
		tags[i] = p.Tag(a.Name)
	}
	fmt.Fprintf(p.out, "  Áreas de conocimiento: %s\n", strings.Join(tags, " "))
}

func noAreasHint(kind domain.ResultKind) string {
	if kind == domain.KindProfessor {
		return TextProfessorNoAreas
	}
	return TextStudentNoAreas
}
