// Package out defines outbound ports (driven ports) for the application.
package out

import (
	"context"

	"digest_worker/core/domain"

	"golang.org/x/oauth2"
)

// TokenProvider exchanges service credentials for a Graph-scoped token.
// Implemented by the identity adapter. Failure is fatal to the run.
type TokenProvider interface {
	Acquire(ctx context.Context) (*oauth2.Token, error)
}

// MailProvider is the outbound port for the mail API.
type MailProvider interface {
	// ListUnread fetches unread messages from the mailbox's configured
	// folder. An empty mailbox yields an empty slice, not an error.
	ListUnread(ctx context.Context, token *oauth2.Token, mailbox string) ([]domain.Email, error)

	// Send delivers a plain-text message from one mailbox to one recipient.
	Send(ctx context.Context, token *oauth2.Token, from, to, subject, body string) error

	// MarkRead flags one message as read. Best-effort housekeeping;
	// callers log failures and never propagate them.
	MarkRead(ctx context.Context, token *oauth2.Token, mailbox, messageID string) error
}

// EmailClassifier produces a structured judgment for one email.
// Any error degrades that email to unclassified at the caller.
type EmailClassifier interface {
	Classify(ctx context.Context, subject, body string) (*domain.Classification, error)
}
