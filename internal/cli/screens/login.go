package screens

import (
	"context"
	"sync"

	"github.com/stellar-burgers/burgerctl/internal/models"
	"github.com/stellar-burgers/burgerctl/internal/session"
)

// Navigator moves the application to a route
type Navigator interface {
	Navigate(path string)
}

// LoginScreen binds the login form to the session store.
// Every logged out to logged in transition of the store navigates home once.
type LoginScreen struct {
	actions *session.Actions
	nav     Navigator

	mu          sync.Mutex
	email       string
	password    string
	unsubscribe func()
}

// NewLoginScreen mounts the screen: an already logged in session navigates immediately
func NewLoginScreen(actions *session.Actions, nav Navigator) *LoginScreen {
	s := &LoginScreen{actions: actions, nav: nav}

	store := actions.Store()
	s.unsubscribe = store.Subscribe(s.onChange)
	if store.State().LoggedIn() {
		s.nav.Navigate(RouteHome)
	}

	return s
}

// onChange compares the states of a single dispatch, so late or reordered notifications
// still navigate for their own transition
func (s *LoginScreen) onChange(prev, next session.State) {
	if !prev.LoggedIn() && next.LoggedIn() {
		s.nav.Navigate(RouteHome)
	}
}

// SetEmail updates the email field
func (s *LoginScreen) SetEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
}

// SetPassword updates the password field
func (s *LoginScreen) SetPassword(password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = password
}

// Email returns the current email field
func (s *LoginScreen) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// Submit validates the form and runs the login operation.
// An invalid form returns *FormError and dispatches nothing.
func (s *LoginScreen) Submit(ctx context.Context) error {
	s.mu.Lock()
	data := models.LoginData{Email: s.email, Password: s.password}
	s.mu.Unlock()

	if err := ValidateForm(data); err != nil {
		return err
	}

	_, err := s.actions.LoginUser(ctx, data)
	return err
}

// Loading reports whether an auth operation is in flight
func (s *LoginScreen) Loading() bool {
	return session.GetIsAuthLoading(s.actions.Store().State())
}

// ErrorText returns the session error or ""
func (s *LoginScreen) ErrorText() string {
	return s.actions.Store().State().ErrorText()
}

// User returns the session user
func (s *LoginScreen) User() models.User {
	return session.GetUser(s.actions.Store().State())
}

// Close unmounts the screen
func (s *LoginScreen) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
