package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service = "burgerctl"

	// RefreshTokenKey is the durable storage key of the refresh token
	RefreshTokenKey = "refreshToken"
	// AccessTokenKey is the cookie name of the access token
	AccessTokenKey = "accessToken"
)

// ErrNotFound is returned when no token is stored for a server
var ErrNotFound = errors.New("not authenticated. Please run 'burgerctl login' first")

// getKeyringService returns the keyring service that namespaces tokens per server
func getKeyringService(serverURL string) string {
	return fmt.Sprintf("%s:%s", service, serverURL)
}

// SaveRefreshToken persists the refresh token in the OS keychain/credential manager
func SaveRefreshToken(serverURL, token string) error {
	if err := keyring.Set(getKeyringService(serverURL), RefreshTokenKey, token); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// LoadRefreshToken retrieves the refresh token from the OS keychain/credential manager
func LoadRefreshToken(serverURL string) (string, error) {
	token, err := keyring.Get(getKeyringService(serverURL), RefreshTokenKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load refresh token: %w", err)
	}
	return token, nil
}

// DeleteRefreshToken removes the refresh token from the OS keychain/credential manager
func DeleteRefreshToken(serverURL string) error {
	if err := keyring.Delete(getKeyringService(serverURL), RefreshTokenKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
