package session

import (
	"fmt"

	"github.com/stellar-burgers/burgerctl/internal/models"
)

// Op names an asynchronous operation of the user slice
type Op string

const (
	OpGetUserAuth    Op = "user/getUser"
	OpLoginUser      Op = "user/loginUser"
	OpRegisterUser   Op = "user/register"
	OpUpdateUserData Op = "user/updateUserData"
	OpUserLogout     Op = "user/logout"
	OpGetUserOrders  Op = "user/getUserOrders"
	OpNewUserOrder   Op = "user/newUserOrder"
)

// Ops lists every async operation in declaration order
var Ops = []Op{
	OpGetUserAuth,
	OpLoginUser,
	OpRegisterUser,
	OpUpdateUserData,
	OpUserLogout,
	OpGetUserOrders,
	OpNewUserOrder,
}

// affectsAuth reports whether the operation resets and sets the success flag
func (op Op) affectsAuth() bool {
	switch op {
	case OpGetUserAuth, OpLoginUser, OpRegisterUser, OpUpdateUserData, OpUserLogout:
		return true
	default:
		return false
	}
}

// Phase is the lifecycle step an async action reports
type Phase string

const (
	Pending   Phase = "pending"
	Fulfilled Phase = "fulfilled"
	Rejected  Phase = "rejected"
)

// Synchronous action types
const (
	TypeMakeLoginUserSuccess = "user/makeLoginUserSuccess"
	TypeSetLastOrder         = "user/setLastOrder"
)

// Action is a state transition request processed by the reducer.
//
// Async lifecycle actions carry Op and Phase and have Type "<op>/<phase>".
// Rejected actions carry the rejection value in Error; an empty Error means the
// operation was rejected without a value.
type Action struct {
	Type      string
	Op        Op
	Phase     Phase
	RequestID string
	Payload   any
	Error     string
}

// MakeLoginUserSuccess sets the success flag directly
func MakeLoginUserSuccess(success bool) Action {
	return Action{Type: TypeMakeLoginUserSuccess, Payload: success}
}

// SetLastOrder replaces the last submitted order. Pass nil to clear it.
func SetLastOrder(order *models.Order) Action {
	return Action{Type: TypeSetLastOrder, Payload: order}
}

func lifecycleAction(op Op, phase Phase, requestID string) Action {
	return Action{
		Type:      fmt.Sprintf("%s/%s", op, phase),
		Op:        op,
		Phase:     phase,
		RequestID: requestID,
	}
}

// PendingAction reports that an operation has started
func PendingAction(op Op, requestID string) Action {
	return lifecycleAction(op, Pending, requestID)
}

// FulfilledAction reports a successful settlement with its payload.
//
// Payload types: models.UserResponse for user/getUser and user/updateUserData,
// models.AuthResponse for user/loginUser and user/register, nil for user/logout,
// []models.Order for user/getUserOrders and models.NewOrderResponse for
// user/newUserOrder.
func FulfilledAction(op Op, requestID string, payload any) Action {
	a := lifecycleAction(op, Fulfilled, requestID)
	a.Payload = payload
	return a
}

// RejectedAction reports a failed settlement. An empty message means no rejection value.
func RejectedAction(op Op, requestID, message string) Action {
	a := lifecycleAction(op, Rejected, requestID)
	a.Error = message
	return a
}
