package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

type bearerKey struct{}

// WithBearerToken stores an access token in ctx for ContextProvider.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFromRequest copies the request's "Authorization: Bearer" token
// into ctx. Its signature matches the HTTP transport's context hook.
func BearerFromRequest(ctx context.Context, r *http.Request) context.Context {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return ctx
	}
	return WithBearerToken(ctx, strings.TrimSpace(token))
}

// ContextProvider serves the bearer token the caller supplied with the
// request. Such tokens cannot be refreshed here.
type ContextProvider struct{}

func (ContextProvider) Credential(ctx context.Context) (*Credential, error) {
	token, _ := ctx.Value(bearerKey{}).(string)
	if token == "" {
		return nil, fmt.Errorf("%w: no bearer token in request", ErrAuthenticationRequired)
	}
	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	return &Credential{Token: tok, Source: oauth2.StaticTokenSource(tok)}, nil
}
