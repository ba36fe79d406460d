package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/stellar-burgers/burgerctl/internal/cli/auth"
	"github.com/stellar-burgers/burgerctl/internal/models"
)

// jwtExpiredMessage is what the API answers when the access token is stale
const jwtExpiredMessage = "jwt expired"

// TokenSource reads and writes the tokens of the current server
type TokenSource interface {
	AccessToken() (string, error)
	RefreshToken() (string, error)
	SetAccessToken(token string) error
	SetRefreshToken(token string) error
	Clear() error
}

// Client represents an HTTP client for the Stellar Burgers API
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// New creates a new API client
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		tokens: tokens,
		logger: zerolog.Nop(),
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// SetTimeout sets the per-request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetRateLimit caps outgoing requests per second. Zero or less removes the cap.
func (c *Client) SetRateLimit(requestsPerSecond float64) {
	if requestsPerSecond <= 0 {
		c.limiter = nil
		return
	}
	burst := max(1, int(requestsPerSecond))
	c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// SetLogger sets the logger used for request tracing
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// BaseURL returns the API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a failed API response
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("burger api request failed (status %d): %s", e.Status, e.Message)
}

// ErrorMessage returns the message reported by the server
func (e *APIError) ErrorMessage() string {
	return e.Message
}

// IsJWTExpired reports whether err says the access token has expired
func IsJWTExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Message == jwtExpiredMessage
}

// serverResponse is the envelope every endpoint shares
type serverResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// tokenRequest carries a refresh token
type tokenRequest struct {
	Token string `json:"token"`
}

// refreshResponse is returned by the token refresh endpoint
type refreshResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// do sends a request and decodes a successful body into out
func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json;charset=utf-8")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", accessToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("API request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	return checkResponse(resp.StatusCode, data, out)
}

// checkResponse turns non-2xx statuses and success=false bodies into *APIError
func checkResponse(status int, data []byte, out any) error {
	var envelope serverResponse
	decodeErr := json.Unmarshal(data, &envelope)

	if status < 200 || status >= 300 {
		msg := envelope.Message
		if decodeErr != nil || msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{Status: status, Message: msg}
	}

	if decodeErr != nil {
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if !envelope.Success {
		return &APIError{Status: status, Message: envelope.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// doAuthorized sends a request with the stored access token. A missing access token
// or a "jwt expired" answer triggers one token refresh and one retry.
func (c *Client) doAuthorized(ctx context.Context, method, path string, body, out any) error {
	accessToken, err := c.tokens.AccessToken()
	if err != nil {
		if !errors.Is(err, auth.ErrNotFound) {
			return err
		}
		if accessToken, err = c.RefreshTokens(ctx); err != nil {
			return err
		}
	}

	err = c.do(ctx, method, path, accessToken, body, out)
	if !IsJWTExpired(err) {
		return err
	}

	c.logger.Debug().Str("path", path).Msg("Access token expired, refreshing")
	accessToken, err = c.RefreshTokens(ctx)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, accessToken, body, out)
}

// RefreshTokens exchanges the stored refresh token for a new token pair,
// persists both and returns the new access token
func (c *Client) RefreshTokens(ctx context.Context) (string, error) {
	refreshToken, err := c.tokens.RefreshToken()
	if err != nil {
		return "", err
	}

	var resp refreshResponse
	if err := c.do(ctx, http.MethodPost, "/auth/token", "", tokenRequest{Token: refreshToken}, &resp); err != nil {
		return "", err
	}

	if err := c.tokens.SetRefreshToken(resp.RefreshToken); err != nil {
		return "", err
	}
	if err := c.tokens.SetAccessToken(resp.AccessToken); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// GetIngredients returns the ingredient catalog
func (c *Client) GetIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var resp struct {
		Data []models.Ingredient `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/ingredients", "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Login authenticates the user and returns the token pair
func (c *Client) Login(ctx context.Context, data models.LoginData) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", data, &resp); err != nil {
		return models.AuthResponse{}, err
	}
	return resp, nil
}

// Register creates a new account and returns the token pair
func (c *Client) Register(ctx context.Context, data models.RegisterData) (models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", data, &resp); err != nil {
		return models.AuthResponse{}, err
	}
	return resp, nil
}

// GetUser returns the authenticated user
func (c *Client) GetUser(ctx context.Context) (models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.doAuthorized(ctx, http.MethodGet, "/auth/user", nil, &resp); err != nil {
		return models.UserResponse{}, err
	}
	return resp, nil
}

// UpdateUser patches the authenticated user's profile
func (c *Client) UpdateUser(ctx context.Context, patch models.UserPatch) (models.UserResponse, error) {
	var resp models.UserResponse
	if err := c.doAuthorized(ctx, http.MethodPatch, "/auth/user", patch, &resp); err != nil {
		return models.UserResponse{}, err
	}
	return resp, nil
}

// Logout invalidates the refresh token on the server and clears local tokens
func (c *Client) Logout(ctx context.Context) error {
	refreshToken, err := c.tokens.RefreshToken()
	if err != nil {
		return err
	}

	if err := c.do(ctx, http.MethodPost, "/auth/logout", "", tokenRequest{Token: refreshToken}, nil); err != nil {
		return err
	}

	if err := c.tokens.Clear(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to clear local tokens")
	}
	return nil
}

// GetOrders returns the authenticated user's order history
func (c *Client) GetOrders(ctx context.Context) ([]models.Order, error) {
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.doAuthorized(ctx, http.MethodGet, "/orders", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		return []models.Order{}, nil
	}
	return resp.Orders, nil
}

// orderRequest is the order creation body
type orderRequest struct {
	Ingredients []string `json:"ingredients"`
}

// OrderBurger places an order for the given ingredient IDs
func (c *Client) OrderBurger(ctx context.Context, ingredients []string) (models.NewOrderResponse, error) {
	var resp models.NewOrderResponse
	if err := c.doAuthorized(ctx, http.MethodPost, "/orders", orderRequest{Ingredients: ingredients}, &resp); err != nil {
		return models.NewOrderResponse{}, err
	}
	return resp, nil
}
