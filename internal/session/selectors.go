package session

import "github.com/stellar-burgers/burgerctl/internal/models"

// GetUserAuthStatus returns the auth success flag
func GetUserAuthStatus(s State) bool {
	return s.Success
}

// GetIsAuthLoading returns whether a request is in flight
func GetIsAuthLoading(s State) bool {
	return s.Loading
}

// GetUser returns the current user
func GetUser(s State) models.User {
	return s.User
}

// GetOrders returns the order history, newest submission first
func GetOrders(s State) []models.Order {
	return s.Orders
}

// GetOrderRequestStatus returns whether an order submission is in flight
func GetOrderRequestStatus(s State) bool {
	return s.OrderRequestData
}

// GetLastOrder returns the last submitted order or nil
func GetLastOrder(s State) *models.Order {
	return s.LastOrder
}
