package session

import (
	"context"
	"errors"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/stellar-burgers/burgerctl/internal/models"
)

// API is the burger API surface the slice depends on
type API interface {
	GetUser(ctx context.Context) (models.UserResponse, error)
	Login(ctx context.Context, data models.LoginData) (models.AuthResponse, error)
	Register(ctx context.Context, data models.RegisterData) (models.AuthResponse, error)
	UpdateUser(ctx context.Context, patch models.UserPatch) (models.UserResponse, error)
	Logout(ctx context.Context) error
	GetOrders(ctx context.Context) ([]models.Order, error)
	OrderBurger(ctx context.Context, ingredients []string) (models.NewOrderResponse, error)
}

// TokenWriter persists the tokens returned by login and registration
type TokenWriter interface {
	SetRefreshToken(token string) error
	SetAccessToken(token string) error
}

// operationFallbacks are used when a failure carries no usable message
var operationFallbacks = map[Op]string{
	OpGetUserAuth:    "Failed to get user authentication details.",
	OpLoginUser:      "An unknown error occurred during login.",
	OpRegisterUser:   "An unknown error occurred during registration.",
	OpUpdateUserData: "Failed to update user data.",
	OpUserLogout:     "Logout failed.",
	OpGetUserOrders:  "Failed to get user orders.",
	OpNewUserOrder:   "Failed to create new order.",
}

// RejectedError is returned by an async operation that settled as rejected.
// Message is the value stored in State.Error.
type RejectedError struct {
	Op        Op
	RequestID string
	Message   string
	Err       error
}

func (e *RejectedError) Error() string {
	return e.Message
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

// Actions runs the async operations of the slice against a store
type Actions struct {
	store  *Store
	api    API
	tokens TokenWriter
	log    zerolog.Logger
	newID  func() string
}

// NewActions binds the async operations to a store, an API and a token writer
func NewActions(store *Store, api API, tokens TokenWriter, log zerolog.Logger) *Actions {
	return &Actions{
		store:  store,
		api:    api,
		tokens: tokens,
		log:    log,
		newID: func() string {
			return ulid.Make().String()
		},
	}
}

// Store returns the store the operations dispatch into
func (a *Actions) Store() *Store {
	return a.store
}

// GetUserAuth fetches the current user with the stored access token
func (a *Actions) GetUserAuth(ctx context.Context) (models.UserResponse, error) {
	return run(ctx, a, OpGetUserAuth, a.api.GetUser, nil)
}

// LoginUser authenticates and persists the returned tokens
func (a *Actions) LoginUser(ctx context.Context, data models.LoginData) (models.AuthResponse, error) {
	return run(ctx, a, OpLoginUser, func(ctx context.Context) (models.AuthResponse, error) {
		return a.api.Login(ctx, data)
	}, a.persistTokens)
}

// RegisterUser creates an account and persists the returned tokens
func (a *Actions) RegisterUser(ctx context.Context, data models.RegisterData) (models.AuthResponse, error) {
	return run(ctx, a, OpRegisterUser, func(ctx context.Context) (models.AuthResponse, error) {
		return a.api.Register(ctx, data)
	}, a.persistTokens)
}

// UpdateUserData sends a partial profile update
func (a *Actions) UpdateUserData(ctx context.Context, patch models.UserPatch) (models.UserResponse, error) {
	return run(ctx, a, OpUpdateUserData, func(ctx context.Context) (models.UserResponse, error) {
		return a.api.UpdateUser(ctx, patch)
	}, nil)
}

// UserLogout ends the session on the server
func (a *Actions) UserLogout(ctx context.Context) error {
	_, err := run(ctx, a, OpUserLogout, func(ctx context.Context) (any, error) {
		return nil, a.api.Logout(ctx)
	}, nil)
	return err
}

// GetUserOrders replaces the order history with the server's list
func (a *Actions) GetUserOrders(ctx context.Context) ([]models.Order, error) {
	return run(ctx, a, OpGetUserOrders, a.api.GetOrders, nil)
}

// NewUserOrder submits an order for the given ingredient IDs
func (a *Actions) NewUserOrder(ctx context.Context, ingredients []string) (models.NewOrderResponse, error) {
	return run(ctx, a, OpNewUserOrder, func(ctx context.Context) (models.NewOrderResponse, error) {
		return a.api.OrderBurger(ctx, ingredients)
	}, nil)
}

// persistTokens stores both tokens. Failures are logged and otherwise ignored.
func (a *Actions) persistTokens(resp models.AuthResponse) {
	if a.tokens == nil {
		return
	}
	if err := a.tokens.SetRefreshToken(resp.RefreshToken); err != nil {
		a.log.Warn().Err(err).Msg("Failed to save refresh token")
	}
	if err := a.tokens.SetAccessToken(resp.AccessToken); err != nil {
		a.log.Warn().Err(err).Msg("Failed to save access token")
	}
}

// run dispatches pending, performs call, and dispatches fulfilled or rejected.
// onSuccess runs before the fulfilled action is dispatched.
func run[T any](ctx context.Context, a *Actions, op Op, call func(context.Context) (T, error), onSuccess func(T)) (T, error) {
	requestID := a.newID()
	a.store.Dispatch(PendingAction(op, requestID))

	result, err := call(ctx)
	if err != nil {
		msg := rejectionMessage(err, operationFallbacks[op])
		a.log.Debug().Err(err).Str("op", string(op)).Str("request_id", requestID).Msg("Operation rejected")
		a.store.Dispatch(RejectedAction(op, requestID, msg))

		var zero T
		return zero, &RejectedError{Op: op, RequestID: requestID, Message: msg, Err: err}
	}

	if onSuccess != nil {
		onSuccess(result)
	}
	a.store.Dispatch(FulfilledAction(op, requestID, result))
	return result, nil
}

// rejectionMessage normalizes a failure into the message stored in State.Error
func rejectionMessage(err error, fallback string) string {
	var carrier interface{ ErrorMessage() string }
	if errors.As(err, &carrier) {
		if msg := carrier.ErrorMessage(); msg != "" {
			return msg
		}
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
