package domain

// Area is a knowledge area tag
type Area struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Subject is a course taught by a professor
type Subject struct {
	ID   int64  `json:"id"`
	Name string `json:"nombre"`
}

// Requirement is a single requirement line of a proposal
type Requirement struct {
	ID   int64  `json:"id"`
	Text string `json:"descripcion"`
}

// Keyword is a single keyword of a proposal
type Keyword struct {
	ID   int64  `json:"id"`
	Word string `json:"palabra"`
}

// ContactInfo is a single contact entry of a proposal
type ContactInfo struct {
	ID    int64  `json:"id"`
	Value string `json:"dato"`
}

// Author identifies who wrote a proposal
type Author struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Role  Role   `json:"tipo"`
}

// Proposal is a research or project proposal as returned by the backend.
// ID never changes once assigned; Visible is toggled on its own endpoint.
type Proposal struct {
	ID             int64         `json:"id"`
	Name           string        `json:"nombre"`
	Objective      string        `json:"objetivo"`
	StudentCount   int           `json:"cantidad_alumnos"`
	ProfessorCount int           `json:"cantidad_profesores"`
	Requirements   []Requirement `json:"requisitos"`
	Keywords       []Keyword     `json:"palabras_clave"`
	Areas          []Area        `json:"areas"`
	Career         string        `json:"carrera"`
	Type           string        `json:"tipo_propuesta"`
	Contacts       []ContactInfo `json:"datos_contacto"`
	Author         Author        `json:"autor"`
	CreatedAt      string        `json:"fecha_creacion"`
	UpdatedAt      string        `json:"fecha_actualizacion"`
	Visible        bool          `json:"visible"`
}

// ProposalInput is the write payload for creating or replacing a proposal
type ProposalInput struct {
	Name           string   `json:"nombre"`
	Objective      string   `json:"objetivo"`
	StudentCount   int      `json:"cantidad_alumnos"`
	ProfessorCount int      `json:"cantidad_profesores"`
	Requirements   []string `json:"requisitos"`
	Keywords       []string `json:"palabras_clave"`
	Areas          []string `json:"areas"`
	Type           string   `json:"tipo_propuesta"`
	Contacts       []string `json:"datos_contacto"`
	Visible        *bool    `json:"visible,omitempty"`
}

// Conversation is a chat thread between platform users
type Conversation struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Participants []map[string]any `json:"participants"`
	IsGroup      bool             `json:"is_group"`
}

// ProblemReport is a user-submitted issue report
type ProblemReport struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Email       string `json:"email"`
}
