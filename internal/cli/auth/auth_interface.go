package auth

import (
	"errors"
	"time"
)

// TokenStore defines the interface for token storage operations
// This allows us to mock the keyring in tests
type TokenStore interface {
	SaveRefreshToken(serverURL, token string) error
	LoadRefreshToken(serverURL string) (string, error)
	SaveAccessToken(serverURL, token string) error
	LoadAccessToken(serverURL string) (string, error)
	DeleteTokens(serverURL string) error
}

// defaultTokenStore keeps the refresh token in the OS keyring and the access token in a cookie jar
type defaultTokenStore struct {
	cookies *CookieJar
	now     func() time.Time
}

// NewDefaultStore creates the production token store
func NewDefaultStore(cookies *CookieJar) TokenStore {
	return &defaultTokenStore{cookies: cookies, now: time.Now}
}

func (d *defaultTokenStore) SaveRefreshToken(serverURL, token string) error {
	return SaveRefreshToken(serverURL, token)
}

func (d *defaultTokenStore) LoadRefreshToken(serverURL string) (string, error) {
	return LoadRefreshToken(serverURL)
}

func (d *defaultTokenStore) SaveAccessToken(serverURL, token string) error {
	return d.cookies.Set(serverURL, AccessTokenKey, token, AccessTokenExpiry(token, d.now()))
}

func (d *defaultTokenStore) LoadAccessToken(serverURL string) (string, error) {
	return d.cookies.Get(serverURL, AccessTokenKey)
}

func (d *defaultTokenStore) DeleteTokens(serverURL string) error {
	return errors.Join(
		DeleteRefreshToken(serverURL),
		d.cookies.Delete(serverURL, AccessTokenKey),
	)
}

// Tokens binds a TokenStore to one server
type Tokens struct {
	store     TokenStore
	serverURL string
}

// ForServer returns the token surface for a single server
func ForServer(store TokenStore, serverURL string) *Tokens {
	return &Tokens{store: store, serverURL: serverURL}
}

// SetRefreshToken stores the durable refresh token
func (t *Tokens) SetRefreshToken(token string) error {
	return t.store.SaveRefreshToken(t.serverURL, token)
}

// SetAccessToken stores the short-lived access token
func (t *Tokens) SetAccessToken(token string) error {
	return t.store.SaveAccessToken(t.serverURL, token)
}

// RefreshToken returns the stored refresh token or ErrNotFound
func (t *Tokens) RefreshToken() (string, error) {
	return t.store.LoadRefreshToken(t.serverURL)
}

// AccessToken returns the stored, unexpired access token or ErrNotFound
func (t *Tokens) AccessToken() (string, error) {
	return t.store.LoadAccessToken(t.serverURL)
}

// Clear removes both tokens
func (t *Tokens) Clear() error {
	return t.store.DeleteTokens(t.serverURL)
}
