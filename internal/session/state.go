// Package session holds the client-side user and order state: a single State value,
// the actions that change it, a pure reducer, selectors, and the async operations that
// call the burger API and report their lifecycle into the Store.
package session

import "github.com/stellar-burgers/burgerctl/internal/models"

// State is the user/order slice of the application state.
//
// Success implies a non-empty User.Email and an empty Error after any async
// operation settles.
type State struct {
	Success bool
	User    models.User
	Error   *string
	Loading bool

	Orders           []models.Order
	LastOrder        *models.Order
	OrderRequestData bool
}

// InitialState returns the empty, unauthenticated state
func InitialState() State {
	return State{
		User:   models.User{},
		Orders: []models.Order{},
	}
}

// ErrorText returns the current error message or an empty string
func (s State) ErrorText() string {
	if s.Error == nil {
		return ""
	}
	return *s.Error
}

// LoggedIn reports whether the state describes a successful, error-free login
func (s State) LoggedIn() bool {
	return s.Success && s.User.Email != "" && s.Error == nil
}

func errorPtr(msg string) *string {
	return &msg
}
