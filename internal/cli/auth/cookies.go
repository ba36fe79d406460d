package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	configDirName  = "burgerctl"
	cookieFileName = "cookies.json"

	// DefaultAccessTokenTTL is used when the access token carries no exp claim
	DefaultAccessTokenTTL = 20 * time.Minute
)

// Cookie is a named value with an expiry
type Cookie struct {
	Value   string    `json:"value"`
	Expires time.Time `json:"expires"`
}

// CookieJar stores short-lived cookies per server in a JSON file
type CookieJar struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// DefaultCookieJarPath returns ~/.config/burgerctl/cookies.json
func DefaultCookieJarPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", configDirName, cookieFileName), nil
}

// NewCookieJar creates a jar backed by the file at path
func NewCookieJar(path string) *CookieJar {
	return &CookieJar{path: path, now: time.Now}
}

// Set stores a cookie for the server
func (j *CookieJar) Set(serverURL, name, value string, expires time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	cookies, err := j.load()
	if err != nil {
		return err
	}

	if cookies[serverURL] == nil {
		cookies[serverURL] = make(map[string]Cookie)
	}
	cookies[serverURL][name] = Cookie{Value: value, Expires: expires}

	return j.save(cookies)
}

// Get returns the cookie value. Missing and expired cookies return ErrNotFound.
func (j *CookieJar) Get(serverURL, name string) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	cookies, err := j.load()
	if err != nil {
		return "", err
	}

	cookie, ok := cookies[serverURL][name]
	if !ok || cookie.Value == "" {
		return "", ErrNotFound
	}
	if !cookie.Expires.IsZero() && !j.now().Before(cookie.Expires) {
		return "", ErrNotFound
	}
	return cookie.Value, nil
}

// Delete removes a cookie. Deleting a missing cookie is not an error.
func (j *CookieJar) Delete(serverURL, name string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	cookies, err := j.load()
	if err != nil {
		return err
	}

	if _, ok := cookies[serverURL][name]; !ok {
		return nil
	}
	delete(cookies[serverURL], name)
	if len(cookies[serverURL]) == 0 {
		delete(cookies, serverURL)
	}

	return j.save(cookies)
}

func (j *CookieJar) load() (map[string]map[string]Cookie, error) {
	cookies := make(map[string]map[string]Cookie)

	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cookies, nil
		}
		return nil, fmt.Errorf("failed to read cookie file: %w", err)
	}

	if len(data) == 0 {
		return cookies, nil
	}
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("failed to parse cookie file: %w", err)
	}
	return cookies, nil
}

func (j *CookieJar) save(cookies map[string]map[string]Cookie) error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cookies: %w", err)
	}

	if err := os.WriteFile(j.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write cookie file: %w", err)
	}
	return nil
}

// AccessTokenExpiry returns when an access token stops being valid. The API issues
// "Bearer <jwt>" values; the exp claim is read without verifying the signature.
func AccessTokenExpiry(token string, now time.Time) time.Time {
	raw := strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return now.Add(DefaultAccessTokenTTL)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return now.Add(DefaultAccessTokenTTL)
	}
	return exp.Time
}
