package session

import (
	"github.com/stellar-burgers/burgerctl/internal/models"
)

// reducerFallbacks are used when an operation is rejected without a value
var reducerFallbacks = map[Op]string{
	OpGetUserAuth:    "Failed to get user auth (unknown error)",
	OpLoginUser:      "Login failed (unknown error)",
	OpRegisterUser:   "Registration failed (unknown error)",
	OpUpdateUserData: "Failed to update user data (unknown error)",
	OpUserLogout:     "Logout failed (unknown error)",
	OpGetUserOrders:  "Failed to get user orders (unknown error)",
	OpNewUserOrder:   "Failed to create new order (unknown error)",
}

// Reduce returns the state that follows s after applying a. It never mutates s;
// the orders slice is copied before it is changed. Unknown actions return s unchanged.
func Reduce(s State, a Action) State {
	switch a.Type {
	case TypeMakeLoginUserSuccess:
		if v, ok := a.Payload.(bool); ok {
			s.Success = v
		}
		return s
	case TypeSetLastOrder:
		switch v := a.Payload.(type) {
		case *models.Order:
			s.LastOrder = v
		case models.Order:
			s.LastOrder = &v
		case nil:
			s.LastOrder = nil
		}
		return s
	}

	if _, known := reducerFallbacks[a.Op]; !known {
		return s
	}

	switch a.Phase {
	case Pending:
		return reducePending(s, a)
	case Rejected:
		return reduceRejected(s, a)
	case Fulfilled:
		return reduceFulfilled(s, a)
	default:
		return s
	}
}

func reducePending(s State, a Action) State {
	s.Loading = true
	s.Error = nil
	if a.Op.affectsAuth() {
		s.Success = false
	}
	if a.Op == OpNewUserOrder {
		s.OrderRequestData = true
	}
	return s
}

func reduceRejected(s State, a Action) State {
	s.Loading = false
	if a.Op.affectsAuth() {
		s.Success = false
	}
	if a.Op == OpNewUserOrder {
		s.OrderRequestData = false
	}

	msg := a.Error
	if msg == "" {
		msg = reducerFallbacks[a.Op]
	}
	s.Error = errorPtr(msg)
	return s
}

func reduceFulfilled(s State, a Action) State {
	s.Loading = false
	s.Error = nil

	switch a.Op {
	case OpGetUserAuth, OpUpdateUserData:
		if resp, ok := userResponse(a.Payload); ok {
			s.User = resp.User
			s.Success = resp.Success && resp.User.Email != ""
		}
	case OpLoginUser, OpRegisterUser:
		if resp, ok := authResponse(a.Payload); ok {
			s.User = resp.User
			s.Success = resp.Success && resp.User.Email != ""
		}
	case OpUserLogout:
		s.Success = false
		s.User = InitialState().User
	case OpGetUserOrders:
		if orders, ok := a.Payload.([]models.Order); ok {
			s.Orders = append([]models.Order(nil), orders...)
		}
	case OpNewUserOrder:
		s.OrderRequestData = false
		if resp, ok := newOrderResponse(a.Payload); ok {
			order := resp.Order
			s.LastOrder = &order
			s.Orders = prependOrder(s.Orders, order)
		}
	}
	return s
}

// prependOrder returns a new slice with order first, followed by the existing orders
func prependOrder(orders []models.Order, order models.Order) []models.Order {
	next := make([]models.Order, 0, len(orders)+1)
	next = append(next, order)
	return append(next, orders...)
}

func userResponse(payload any) (models.UserResponse, bool) {
	switch v := payload.(type) {
	case models.UserResponse:
		return v, true
	case *models.UserResponse:
		if v != nil {
			return *v, true
		}
	}
	return models.UserResponse{}, false
}

func authResponse(payload any) (models.AuthResponse, bool) {
	switch v := payload.(type) {
	case models.AuthResponse:
		return v, true
	case *models.AuthResponse:
		if v != nil {
			return *v, true
		}
	}
	return models.AuthResponse{}, false
}

func newOrderResponse(payload any) (models.NewOrderResponse, bool) {
	switch v := payload.(type) {
	case models.NewOrderResponse:
		return v, true
	case *models.NewOrderResponse:
		if v != nil {
			return *v, true
		}
	}
	return models.NewOrderResponse{}, false
}
