package search

import (
	"context"

	"github.com/propuestas-project/propctl/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=mocks/searcher_mock.go -package=mocks Searcher

// Searcher runs the two people searches. *api.Client satisfies it.
type Searcher interface {
	SearchProfessors(ctx context.Context, query string) ([]domain.SearchResult, error)
	SearchStudents(ctx context.Context, query string) ([]domain.SearchResult, error)
}

// ContactFunc starts a conversation with a search result
type ContactFunc func(ctx context.Context, result domain.SearchResult) error
