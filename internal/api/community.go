package api

import (
	"context"
	"net/http"

	"github.com/propuestas-project/propctl/internal/domain"
)

type conversationRequest struct {
	ParticipantIDs []int64 `json:"participant_ids"`
	IsGroup        bool    `json:"is_group"`
}

// CreateOrGetConversation opens the one-to-one conversation with a user,
// creating it on first contact.
//
// Errors: KindAuth, KindValidation (including a non-positive id), KindRemote,
// KindUnexpected.
func (c *Client) CreateOrGetConversation(ctx context.Context, participantID int64) (*domain.Conversation, error) {
	if err := requireID("open conversation", participantID); err != nil {
		return nil, err
	}

	conv, err := call[domain.Conversation](ctx, c, &request{
		op:     "open conversation",
		method: http.MethodPost,
		path:   "/chat/conversations/create_or_get_conversation/",
		body: conversationRequest{
			ParticipantIDs: []int64{participantID},
			IsGroup:        false,
		},
		auth:     authRequired,
		fallback: msgConversation,
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// SubmitProblemReport sends a problem report. The session token is attached
// when one is stored, but none is required.
//
// Errors: KindValidation, KindRemote, KindUnexpected.
func (c *Client) SubmitProblemReport(ctx context.Context, report domain.ProblemReport) (map[string]any, error) {
	return call[map[string]any](ctx, c, &request{
		op:       "submit report",
		method:   http.MethodPost,
		path:     "/reports/problem/",
		body:     report,
		auth:     authOptional,
		fallback: msgReport,
	})
}
