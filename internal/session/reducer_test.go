package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar-burgers/burgerctl/internal/models"
)

func TestReduce_PendingSetsLoading(t *testing.T) {
	for _, op := range Ops {
		t.Run(string(op), func(t *testing.T) {
			prev := InitialState()
			prev.Success = true
			prev.User = models.User{Email: "a@b.com", Name: "A"}
			prev.Error = errorPtr("previous failure")

			next := Reduce(prev, PendingAction(op, "req-1"))

			assert.True(t, next.Loading)
			assert.Nil(t, next.Error)
			if op.affectsAuth() {
				assert.False(t, next.Success, "auth operations reset success")
			} else {
				assert.True(t, next.Success, "order operations keep success")
			}
			assert.Equal(t, op == OpNewUserOrder, next.OrderRequestData)
		})
	}
}

func TestReduce_SettlementClearsLoading(t *testing.T) {
	payloads := map[Op]any{
		OpGetUserAuth:    models.UserResponse{Success: true, User: models.User{Email: "a@b.com"}},
		OpLoginUser:      models.AuthResponse{Success: true, User: models.User{Email: "a@b.com"}},
		OpRegisterUser:   models.AuthResponse{Success: true, User: models.User{Email: "a@b.com"}},
		OpUpdateUserData: models.UserResponse{Success: true, User: models.User{Email: "a@b.com"}},
		OpUserLogout:     nil,
		OpGetUserOrders:  []models.Order{{ID: "1"}},
		OpNewUserOrder:   models.NewOrderResponse{Success: true, Order: models.Order{ID: "2"}},
	}

	for _, op := range Ops {
		t.Run(string(op), func(t *testing.T) {
			pending := Reduce(InitialState(), PendingAction(op, "req"))
			require.True(t, pending.Loading)

			fulfilled := Reduce(pending, FulfilledAction(op, "req", payloads[op]))
			assert.False(t, fulfilled.Loading)
			assert.Nil(t, fulfilled.Error)
			assert.False(t, fulfilled.OrderRequestData)

			rejected := Reduce(pending, RejectedAction(op, "req", "boom"))
			assert.False(t, rejected.Loading)
			assert.False(t, rejected.OrderRequestData)
			require.NotNil(t, rejected.Error)
			assert.Equal(t, "boom", *rejected.Error)
		})
	}
}

func TestReduce_LoginFulfilled(t *testing.T) {
	for _, op := range []Op{OpLoginUser, OpRegisterUser} {
		t.Run(string(op), func(t *testing.T) {
			s := Reduce(InitialState(), PendingAction(op, "r"))
			s = Reduce(s, FulfilledAction(op, "r", models.AuthResponse{
				Success: true,
				User:    models.User{Email: "a@b.com", Name: "A"},
			}))

			assert.True(t, s.Success)
			assert.Equal(t, "a@b.com", s.User.Email)
			assert.Equal(t, "A", s.User.Name)
			assert.Nil(t, s.Error)
			assert.True(t, s.LoggedIn())
		})
	}
}

func TestReduce_SuccessRequiresEmail(t *testing.T) {
	s := Reduce(InitialState(), FulfilledAction(OpGetUserAuth, "r", models.UserResponse{Success: true}))
	assert.False(t, s.Success)
}

func TestReduce_LoginRejected(t *testing.T) {
	s := Reduce(InitialState(), PendingAction(OpLoginUser, "r"))
	s = Reduce(s, RejectedAction(OpLoginUser, "r", "Invalid credentials"))

	assert.False(t, s.Success)
	assert.False(t, s.Loading)
	assert.Equal(t, "Invalid credentials", s.ErrorText())
}

func TestReduce_RejectedWithoutValueUsesFallback(t *testing.T) {
	tests := map[Op]string{
		OpGetUserAuth:    "Failed to get user auth (unknown error)",
		OpLoginUser:      "Login failed (unknown error)",
		OpRegisterUser:   "Registration failed (unknown error)",
		OpUpdateUserData: "Failed to update user data (unknown error)",
		OpUserLogout:     "Logout failed (unknown error)",
		OpGetUserOrders:  "Failed to get user orders (unknown error)",
		OpNewUserOrder:   "Failed to create new order (unknown error)",
	}

	for op, want := range tests {
		t.Run(string(op), func(t *testing.T) {
			s := Reduce(InitialState(), RejectedAction(op, "r", ""))
			assert.Equal(t, want, s.ErrorText())
		})
	}
}

func TestReduce_LogoutResetsUser(t *testing.T) {
	prev := InitialState()
	prev.Success = true
	prev.User = models.User{Email: "a@b.com", Name: "A"}

	s := Reduce(prev, PendingAction(OpUserLogout, "r"))
	s = Reduce(s, FulfilledAction(OpUserLogout, "r", nil))

	assert.Equal(t, models.User{Email: "", Name: ""}, s.User)
	assert.False(t, s.Success)

	again := Reduce(InitialState(), FulfilledAction(OpUserLogout, "r", nil))
	assert.Equal(t, models.User{}, again.User)
	assert.False(t, again.Success)
}

func TestReduce_NewOrderPrepends(t *testing.T) {
	prev := InitialState()
	prev.Orders = []models.Order{{ID: "1"}}

	s := Reduce(prev, PendingAction(OpNewUserOrder, "r"))
	require.True(t, s.OrderRequestData)

	s = Reduce(s, FulfilledAction(OpNewUserOrder, "r", models.NewOrderResponse{
		Success: true,
		Order:   models.Order{ID: "42", Number: 42},
	}))

	require.Len(t, s.Orders, 2)
	assert.Equal(t, "42", s.Orders[0].ID)
	assert.Equal(t, "1", s.Orders[1].ID)
	require.NotNil(t, s.LastOrder)
	assert.Equal(t, "42", s.LastOrder.ID)
	assert.False(t, s.OrderRequestData)

	// the previous state is untouched
	assert.Len(t, prev.Orders, 1)
}

func TestReduce_NewOrderKeepsExistingSameID(t *testing.T) {
	prev := InitialState()
	prev.Orders = []models.Order{{ID: "7", Status: models.OrderStatusPending}, {ID: "1"}}

	s := Reduce(prev, FulfilledAction(OpNewUserOrder, "r", models.NewOrderResponse{
		Order: models.Order{ID: "7", Status: models.OrderStatusDone},
	}))

	require.Len(t, s.Orders, 3)
	assert.Equal(t, models.OrderStatusDone, s.Orders[0].Status)
	assert.Equal(t, models.OrderStatusPending, s.Orders[1].Status)
	assert.Equal(t, "1", s.Orders[2].ID)
}

func TestReduce_GetOrdersReplaces(t *testing.T) {
	prev := InitialState()
	prev.Orders = []models.Order{{ID: "old"}}

	s := Reduce(prev, FulfilledAction(OpGetUserOrders, "r", []models.Order{{ID: "3"}, {ID: "2"}}))

	require.Len(t, s.Orders, 2)
	assert.Equal(t, "3", s.Orders[0].ID)
	assert.Equal(t, "2", s.Orders[1].ID)
}

func TestReduce_MakeLoginUserSuccessIdempotent(t *testing.T) {
	once := Reduce(InitialState(), MakeLoginUserSuccess(true))
	twice := Reduce(once, MakeLoginUserSuccess(true))

	assert.Equal(t, once, twice)
	assert.True(t, twice.Success)
}

func TestReduce_SetLastOrder(t *testing.T) {
	order := &models.Order{ID: "9"}

	s := Reduce(InitialState(), SetLastOrder(order))
	require.NotNil(t, s.LastOrder)
	assert.Equal(t, "9", s.LastOrder.ID)

	s = Reduce(s, SetLastOrder(nil))
	assert.Nil(t, s.LastOrder)
}

func TestReduce_GetUserAfterLoginKeepsUser(t *testing.T) {
	user := models.User{Email: "a@b.com", Name: "A"}

	s := Reduce(InitialState(), FulfilledAction(OpLoginUser, "r1", models.AuthResponse{Success: true, User: user}))
	s = Reduce(s, PendingAction(OpGetUserAuth, "r2"))
	s = Reduce(s, FulfilledAction(OpGetUserAuth, "r2", models.UserResponse{Success: true, User: user}))

	assert.Equal(t, user, s.User)
	assert.True(t, s.Success)
}

func TestReduce_UnknownActionIsNoop(t *testing.T) {
	prev := InitialState()
	prev.Success = true

	next := Reduce(prev, Action{Type: "cart/addItem"})
	assert.Equal(t, prev, next)
}

func TestSelectors(t *testing.T) {
	last := &models.Order{ID: "5"}
	s := State{
		Success:          true,
		Loading:          true,
		User:             models.User{Email: "a@b.com", Name: "A"},
		Orders:           []models.Order{{ID: "5"}},
		LastOrder:        last,
		OrderRequestData: true,
	}

	assert.True(t, GetUserAuthStatus(s))
	assert.True(t, GetIsAuthLoading(s))
	assert.Equal(t, "a@b.com", GetUser(s).Email)
	assert.Len(t, GetOrders(s), 1)
	assert.True(t, GetOrderRequestStatus(s))
	assert.Same(t, last, GetLastOrder(s))
}
