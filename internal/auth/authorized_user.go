package auth

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// AuthorizedUser is the credentials file written by the OAuth consent
// flow, usually ~/.google-slides-mcp/credentials.json.
type AuthorizedUser struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token"`
	TokenURI     string   `json:"token_uri,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
}

// Expiry layouts seen in credential files. Naive timestamps are UTC.
var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseAuthorizedUser decodes and validates a credentials file.
func ParseAuthorizedUser(data []byte) (*AuthorizedUser, error) {
	var u AuthorizedUser
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if u.Token == "" && u.RefreshToken == "" {
		return nil, fmt.Errorf("credentials contain neither token nor refresh_token")
	}
	if _, err := u.ExpiryTime(); err != nil {
		return nil, err
	}
	return &u, nil
}

// ExpiryTime parses Expiry; zero means unknown.
func (u *AuthorizedUser) ExpiryTime() (time.Time, error) {
	if strings.TrimSpace(u.Expiry) == "" {
		return time.Time{}, nil
	}
	for _, layout := range expiryLayouts {
		if t, err := time.ParseInLocation(layout, u.Expiry, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse credentials: bad expiry %q", u.Expiry)
}

// OAuthToken converts u to an oauth2 token.
func (u *AuthorizedUser) OAuthToken() *oauth2.Token {
	expiry, _ := u.ExpiryTime()
	return &oauth2.Token{
		AccessToken:  u.Token,
		TokenType:    "Bearer",
		RefreshToken: u.RefreshToken,
		Expiry:       expiry,
	}
}

// withToken returns a copy of u carrying tok. The refresh token is kept
// when the token endpoint does not rotate it.
func (u AuthorizedUser) withToken(tok *oauth2.Token) AuthorizedUser {
	u.Token = tok.AccessToken
	if tok.RefreshToken != "" {
		u.RefreshToken = tok.RefreshToken
	}
	u.Expiry = ""
	if !tok.Expiry.IsZero() {
		u.Expiry = tok.Expiry.UTC().Format(time.RFC3339)
	}
	return u
}
