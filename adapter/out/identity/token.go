// Package identity exchanges service credentials for Microsoft Graph tokens.
package identity

import (
	"context"
	"fmt"

	"digest_worker/core/port/out"
	"digest_worker/pkg/apperr"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	graphScope   = "https://graph.microsoft.com/.default"
	tokenURLBase = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
)

// TokenProvider acquires app-only Graph tokens via the OAuth2
// client-credentials flow.
type TokenProvider struct {
	cc *clientcredentials.Config
}

func NewTokenProvider(tenantID, clientID, clientSecret string) *TokenProvider {
	return &TokenProvider{
		cc: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     fmt.Sprintf(tokenURLBase, tenantID),
			Scopes:       []string{graphScope},
		},
	}
}

// Acquire performs the token exchange. No token means no mailbox access,
// so failures surface as fatal AuthFailed errors.
func (p *TokenProvider) Acquire(ctx context.Context) (*oauth2.Token, error) {
	token, err := p.cc.Token(ctx)
	if err != nil {
		return nil, apperr.AuthFailed(err)
	}
	return token, nil
}

var _ out.TokenProvider = (*TokenProvider)(nil)
