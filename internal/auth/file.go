package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"slides/internal/secret"
)

// DefaultUserKey is the secret store key of the local user's token.
const DefaultUserKey = "google-oauth:default"

// FileConfig configures a FileProvider.
type FileConfig struct {
	// ClientID and ClientSecret are used when the stored credential does
	// not carry its own OAuth client.
	ClientID     string
	ClientSecret string
	// TokenURL overrides the Google token endpoint.
	TokenURL string
	// CacheTTL bounds how long a resolved credential is reused.
	CacheTTL time.Duration
}

// FileProvider serves the token imported from the consent flow's
// credentials file and persisted in a secret store. Refreshed tokens are
// written back to the store.
type FileProvider struct {
	store  secret.SecretStore
	key    string
	cfg    FileConfig
	logger *slog.Logger

	mu       sync.Mutex
	cached   *Credential
	cachedAt time.Time
	now      func() time.Time
}

func NewFileProvider(store secret.SecretStore, key string, cfg FileConfig, logger *slog.Logger) *FileProvider {
	if key == "" {
		key = DefaultUserKey
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Minute
	}
	return &FileProvider{
		store:  store,
		key:    key,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (p *FileProvider) load() (*AuthorizedUser, error) {
	data, err := p.store.Get(p.key)
	if err != nil {
		return nil, fmt.Errorf("read token store: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no stored credential, run `slides-mcp auth import`", ErrAuthenticationRequired)
	}
	return ParseAuthorizedUser(data)
}

func (p *FileProvider) oauthConfig(u *AuthorizedUser) *oauth2.Config {
	c := &oauth2.Config{
		ClientID:     p.cfg.ClientID,
		ClientSecret: p.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}
	if u.ClientID != "" {
		c.ClientID, c.ClientSecret = u.ClientID, u.ClientSecret
	}
	if u.TokenURI != "" {
		c.Endpoint.TokenURL = u.TokenURI
	}
	if p.cfg.TokenURL != "" {
		c.Endpoint.TokenURL = p.cfg.TokenURL
	}
	return c
}

func (p *FileProvider) Credential(ctx context.Context) (*Credential, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != nil && p.now().Sub(p.cachedAt) < p.cfg.CacheTTL {
		return p.cached, nil
	}

	u, err := p.load()
	if err != nil {
		return nil, err
	}
	tok := u.OAuthToken()
	src := &persistingSource{
		base: p.oauthConfig(u).TokenSource(context.Background(), tok),
		last: tok.AccessToken,
		save: func(t *oauth2.Token) { p.persist(*u, t) },
	}
	p.cached = &Credential{Token: tok, Source: src}
	p.cachedAt = p.now()
	return p.cached, nil
}

// Refresh exchanges the stored refresh token for a new access token and
// stores it.
func (p *FileProvider) Refresh(ctx context.Context) error {
	u, err := p.load()
	if err != nil {
		return err
	}
	if u.RefreshToken == "" {
		return errors.New("stored credential has no refresh token")
	}
	tok, err := p.oauthConfig(u).TokenSource(ctx, &oauth2.Token{RefreshToken: u.RefreshToken}).Token()
	if err != nil {
		return fmt.Errorf("refresh token: %w", err)
	}
	p.persist(*u, tok)
	return nil
}

// Import validates a credentials file and stores it, replacing any
// previous credential.
func (p *FileProvider) Import(data []byte) (*AuthorizedUser, error) {
	u, err := ParseAuthorizedUser(data)
	if err != nil {
		return nil, err
	}
	if err := p.write(*u); err != nil {
		return nil, err
	}
	return u, nil
}

// Status describes the stored credential.
type Status struct {
	Stored          bool      `json:"stored"`
	HasRefreshToken bool      `json:"has_refresh_token"`
	Expiry          time.Time `json:"expiry,omitempty"`
	Expired         bool      `json:"expired"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}

// updateTimer is implemented by stores that record write times.
type updateTimer interface {
	UpdatedAt(key string) (time.Time, error)
}

func (p *FileProvider) Status() (Status, error) {
	u, err := p.load()
	if errors.Is(err, ErrAuthenticationRequired) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, err
	}
	expiry, _ := u.ExpiryTime()
	st := Status{
		Stored:          true,
		HasRefreshToken: u.RefreshToken != "",
		Expiry:          expiry,
		Expired:         !expiry.IsZero() && !expiry.After(p.now()),
	}
	if ut, ok := p.store.(updateTimer); ok {
		if st.UpdatedAt, err = ut.UpdatedAt(p.key); err != nil {
			return Status{}, err
		}
	}
	return st, nil
}

func (p *FileProvider) persist(u AuthorizedUser, tok *oauth2.Token) {
	if err := p.write(u.withToken(tok)); err != nil {
		p.logger.Error("persist refreshed token", "err", err)
		return
	}
	p.logger.Debug("stored refreshed token", "expiry", tok.Expiry)
}

func (p *FileProvider) write(u AuthorizedUser) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := p.store.Set(p.key, data); err != nil {
		return fmt.Errorf("write token store: %w", err)
	}
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
	return nil
}

// persistingSource calls save whenever the underlying source hands out a
// new access token.
type persistingSource struct {
	base oauth2.TokenSource
	save func(*oauth2.Token)

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	changed := tok.AccessToken != s.last
	s.last = tok.AccessToken
	s.mu.Unlock()
	if changed {
		s.save(tok)
	}
	return tok, nil
}
