package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/propuestas-project/propctl/internal/domain"
)

func proposalPath(id int64) string {
	return "/propuestas/" + strconv.FormatInt(id, 10) + "/"
}

// CreateProposal publishes a new proposal authored by the current user.
//
// Errors: KindAuth, KindValidation, KindRemote, KindUnexpected.
func (c *Client) CreateProposal(ctx context.Context, in domain.ProposalInput) (*domain.Proposal, error) {
	p, err := call[domain.Proposal](ctx, c, &request{
		op:       "create proposal",
		method:   http.MethodPost,
		path:     "/propuestas/",
		body:     in,
		auth:     authRequired,
		fallback: msgCreateProposal,
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProposal replaces the proposal with the given id.
//
// Errors: KindAuth, KindValidation (including a non-positive id), KindRemote,
// KindUnexpected.
func (c *Client) UpdateProposal(ctx context.Context, id int64, in domain.ProposalInput) (*domain.Proposal, error) {
	if err := requireID("update proposal", id); err != nil {
		return nil, err
	}
	p, err := call[domain.Proposal](ctx, c, &request{
		op:       "update proposal",
		method:   http.MethodPut,
		path:     proposalPath(id),
		body:     in,
		auth:     authRequired,
		fallback: msgUpdateProposal,
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProposals returns every proposal visible to the current user.
//
// Errors: KindAuth, KindRemote, KindUnexpected.
func (c *Client) ListProposals(ctx context.Context) ([]domain.Proposal, error) {
	return call[[]domain.Proposal](ctx, c, &request{
		op:       "list proposals",
		method:   http.MethodGet,
		path:     "/propuestas/",
		auth:     authRequired,
		fallback: msgListProposals,
	})
}

// ListOwnProposals returns the proposals authored by the current user.
//
// Errors: KindAuth, KindRemote, KindUnexpected.
func (c *Client) ListOwnProposals(ctx context.Context) ([]domain.Proposal, error) {
	return call[[]domain.Proposal](ctx, c, &request{
		op:       "list own proposals",
		method:   http.MethodGet,
		path:     "/propuestas/mis_propuestas/",
		auth:     authRequired,
		fallback: msgListProposals,
	})
}

// DeleteProposal removes the proposal with the given id.
//
// Errors: KindAuth, KindValidation (including a non-positive id), KindRemote,
// KindUnexpected.
func (c *Client) DeleteProposal(ctx context.Context, id int64) error {
	if err := requireID("delete proposal", id); err != nil {
		return err
	}
	_, err := c.send(ctx, &request{
		op:       "delete proposal",
		method:   http.MethodDelete,
		path:     proposalPath(id),
		auth:     authRequired,
		fallback: msgDeleteProposal,
	})
	return err
}

// SetProposalVisibility shows or hides a proposal without touching its
// other fields.
//
// Errors: KindAuth, KindValidation (including a non-positive id), KindRemote,
// KindUnexpected.
func (c *Client) SetProposalVisibility(ctx context.Context, id int64, visible bool) error {
	if err := requireID("toggle visibility", id); err != nil {
		return err
	}
	_, err := c.send(ctx, &request{
		op:       "toggle visibility",
		method:   http.MethodPatch,
		path:     proposalPath(id) + "toggle_visibility/",
		body:     map[string]bool{"visible": visible},
		auth:     authRequired,
		fallback: msgToggleVisibility,
	})
	return err
}
