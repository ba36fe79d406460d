package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// User is the profile the API returns for an authenticated account
type User struct {
	Email string `json:"email" yaml:"email"`
	Name  string `json:"name" yaml:"name"`
}

// IsZero reports whether the user is the empty, unauthenticated default
func (u User) IsZero() bool {
	return u.Email == "" && u.Name == ""
}

// Order statuses reported by the API
const (
	OrderStatusCreated = "created"
	OrderStatusPending = "pending"
	OrderStatusDone    = "done"
)

// Order represents a placed burger order
type Order struct {
	ID          string        `json:"_id" yaml:"id"`
	Status      string        `json:"status" yaml:"status"`
	Name        string        `json:"name" yaml:"name"`
	Number      int           `json:"number" yaml:"number"`
	Ingredients IngredientIDs `json:"ingredients" yaml:"ingredients"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" yaml:"updated_at"`
}

// IngredientIDs is the ingredient list of an order. The order history returns plain
// IDs while order creation returns full ingredient objects; both decode to IDs.
type IngredientIDs []string

func (ids *IngredientIDs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("ingredients: %w", err)
	}

	out := make(IngredientIDs, 0, len(raw))
	for _, item := range raw {
		var id string
		if err := json.Unmarshal(item, &id); err == nil {
			out = append(out, id)
			continue
		}

		var obj struct {
			ID string `json:"_id"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("ingredients: %w", err)
		}
		out = append(out, obj.ID)
	}

	*ids = out
	return nil
}

// StatusLabel returns a human readable order status
func (o Order) StatusLabel() string {
	switch o.Status {
	case OrderStatusDone:
		return "Done"
	case OrderStatusPending:
		return "Cooking"
	case OrderStatusCreated:
		return "Created"
	default:
		return o.Status
	}
}

// Label formats the order for pickers and tables, e.g. "#1234 Space burger"
func (o Order) Label() string {
	if o.Number == 0 {
		return o.Name
	}
	return fmt.Sprintf("#%d %s", o.Number, o.Name)
}

// Ingredient types
const (
	IngredientBun   = "bun"
	IngredientMain  = "main"
	IngredientSauce = "sauce"
)

// Ingredient is a catalog item that can go into a burger
type Ingredient struct {
	ID            string `json:"_id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	Proteins      int    `json:"proteins" yaml:"proteins"`
	Fat           int    `json:"fat" yaml:"fat"`
	Carbohydrates int    `json:"carbohydrates" yaml:"carbohydrates"`
	Calories      int    `json:"calories" yaml:"calories"`
	Price         int    `json:"price" yaml:"price"`
	Image         string `json:"image" yaml:"image"`
}

// LoginData holds the credentials sent to the login endpoint
type LoginData struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterData holds the fields sent to the registration endpoint
type RegisterData struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserPatch holds a partial profile update. Empty fields are not sent.
type UserPatch struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// IsEmpty reports whether the patch changes nothing
func (p UserPatch) IsEmpty() bool {
	return p.Email == "" && p.Name == "" && p.Password == ""
}

// TotalPrice sums the catalog price of the given ingredient IDs. Unknown IDs count as zero.
func TotalPrice(catalog []Ingredient, ids []string) int {
	prices := make(map[string]int, len(catalog))
	for _, ing := range catalog {
		prices[ing.ID] = ing.Price
	}

	total := 0
	for _, id := range ids {
		total += prices[id]
	}
	return total
}

// UserResponse is returned by the user and profile update endpoints
type UserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// AuthResponse is returned by the login and register endpoints
type AuthResponse struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// NewOrderResponse is returned by the order creation endpoint
type NewOrderResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name"`
	Order   Order  `json:"order"`
}
