package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/propuestas-project/propctl/internal/domain"
)

const maxCellRunes = 60

// RenderProposals prints proposals as a table
func (p *Printer) RenderProposals(proposals []domain.Proposal) error {
	if len(proposals) == 0 {
		p.Info("No hay propuestas")
		return nil
	}

	t := p.Table([]string{"ID", "Nombre", "Tipo", "Áreas", "Alumnos", "Profesores", "Autor", "Visible"})
	for _, pr := range proposals {
		areas := make([]string, len(pr.Areas))
		for i, a := range pr.Areas {
			areas[i] = a.Name
		}
		t.AddRow([]string{
			strconv.FormatInt(pr.ID, 10),
			clip(pr.Name),
			pr.Type,
			clip(strings.Join(areas, ", ")),
			strconv.Itoa(pr.StudentCount),
			strconv.Itoa(pr.ProfessorCount),
			pr.Author.Name,
			p.VisibilityBadge(pr.Visible),
		})
	}
	return t.Render()
}

// RenderProposal prints every field of a single proposal
func (p *Printer) RenderProposal(pr domain.Proposal) {
	p.Header(pr.Name)
	p.Print("%s %d  %s", p.Dim("ID:"), pr.ID, p.VisibilityBadge(pr.Visible))
	if pr.Objective != "" {
		p.Print("%s %s", p.Bold("Objetivo:"), pr.Objective)
	}
	if pr.Type != "" {
		p.Print("%s %s", p.Bold("Tipo:"), pr.Type)
	}
	p.Print("%s %d alumnos, %d profesores", p.Bold("Cupo:"), pr.StudentCount, pr.ProfessorCount)

	if len(pr.Requirements) > 0 {
		p.Print("%s", p.Bold("Requisitos:"))
		for _, r := range pr.Requirements {
			p.Print("  - %s", r.Text)
		}
	}
	if len(pr.Keywords) > 0 {
		words := make([]string, len(pr.Keywords))
		for i, k := range pr.Keywords {
			words[i] = p.Tag(k.Word)
		}
		p.Print("%s %s", p.Bold("Palabras clave:"), strings.Join(words, " "))
	}
	if len(pr.Contacts) > 0 {
		contacts := make([]string, len(pr.Contacts))
		for i, c := range pr.Contacts {
			contacts[i] = c.Value
		}
		p.Print("%s %s", p.Bold("Contacto:"), strings.Join(contacts, ", "))
	}
	if pr.Author.Name != "" {
		p.Print("%s %s <%s>", p.Bold("Autor:"), pr.Author.Name, pr.Author.Email)
	}
}

// RenderCatalog prints the area and subject catalogs
func (p *Printer) RenderCatalog(areas []domain.Area, subjects []domain.Subject) error {
	p.Header("Áreas de conocimiento")
	at := p.Table([]string{"ID", "Nombre"})
	for _, a := range areas {
		at.AddRow([]string{strconv.FormatInt(a.ID, 10), a.Name})
	}
	if err := at.Render(); err != nil {
		return err
	}

	p.Header("Materias")
	st := p.Table([]string{"ID", "Nombre"})
	for _, s := range subjects {
		st.AddRow([]string{strconv.FormatInt(s.ID, 10), s.Name})
	}
	return st.Render()
}

// RenderRecords prints admin rows. Columns are the union of all keys with
// id first and the rest sorted.
func (p *Printer) RenderRecords(records []domain.Record) error {
	if len(records) == 0 {
		p.Info("Sin registros")
		return nil
	}

	cols := recordColumns(records)
	t := p.Table(cols)
	for _, rec := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = clip(formatValue(rec[c]))
		}
		t.AddRow(row)
	}
	return t.Render()
}

// RenderKeyValues prints a metrics or profile map as a two column table
func (p *Printer) RenderKeyValues(values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := p.Table([]string{"Campo", "Valor"})
	for _, k := range keys {
		t.AddRow([]string{k, clip(formatValue(values[k]))})
	}
	return t.Render()
}

func recordColumns(records []domain.Record) []string {
	seen := map[string]bool{}
	var cols []string
	for _, rec := range records {
		for k := range rec {
			if k == "id" || seen[k] {
				continue
			}
			seen[k] = true
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	return append([]string{"id"}, cols...)
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = formatValue(item)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if name, ok := val["nombre"]; ok {
			return formatValue(name)
		}
		if email, ok := val["email"]; ok {
			return formatValue(email)
		}
		return fmt.Sprint(val)
	default:
		return fmt.Sprint(val)
	}
}

func clip(s string) string {
	r := []rune(s)
	if len(r) <= maxCellRunes {
		return s
	}
	return string(r[:maxCellRunes-1]) + "…"
}
