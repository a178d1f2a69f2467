// Package auth supplies Google OAuth credentials to the remote API
// clients. A Provider is resolved on every call; nothing here caches a
// credential across callers except FileProvider's short-lived cache.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
)

var ErrAuthenticationRequired = errors.New("authentication required")

// Scopes requested from the consent flow and used for refresh.
var Scopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/presentations",
	"https://www.googleapis.com/auth/drive.file",
}

// Credential is a bearer token plus the means to refresh it.
type Credential struct {
	Token  *oauth2.Token
	Source oauth2.TokenSource
}

// Authorize sets the Authorization header on req, refreshing the token
// first if it has expired.
func (c *Credential) Authorize(req *http.Request) error {
	tok, err := c.Source.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthenticationRequired, err)
	}
	tok.SetAuthHeader(req)
	return nil
}

// Provider resolves the credential for one invocation.
type Provider interface {
	Credential(ctx context.Context) (*Credential, error)
}

// Chain tries each provider in order. A provider failing with
// ErrAuthenticationRequired passes to the next; any other error stops
// the chain.
type Chain []Provider

func (c Chain) Credential(ctx context.Context) (*Credential, error) {
	for _, p := range c {
		cred, err := p.Credential(ctx)
		if err == nil {
			return cred, nil
		}
		if !errors.Is(err, ErrAuthenticationRequired) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: no credential in request context or token store", ErrAuthenticationRequired)
}
