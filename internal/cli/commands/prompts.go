package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/stellar-burgers/burgerctl/internal/cli/screens"
	"github.com/stellar-burgers/burgerctl/internal/models"
)

// ErrNotInteractive is returned when a prompt is needed but stdin is not a terminal
var ErrNotInteractive = errors.New("stdin is not a terminal")

// Picker asks the user for the values a command could not get from flags or env
type Picker interface {
	Email(defaultEmail string) (string, error)
	Password(label string) (string, error)
	Burger(catalog []models.Ingredient) ([]string, error)
}

// promptPicker prompts on the terminal
type promptPicker struct{}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (promptPicker) Email(defaultEmail string) (string, error) {
	if !interactive() {
		return "", ErrNotInteractive
	}

	prompt := promptui.Prompt{
		Label:   "Email",
		Default: defaultEmail,
		Validate: func(input string) error {
			if err := screens.ValidateForm(models.LoginData{Email: input, Password: "-"}); err != nil {
				return errors.New("enter a valid email address")
			}
			return nil
		},
	}

	email, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("email prompt cancelled: %w", err)
	}
	return strings.TrimSpace(email), nil
}

func (promptPicker) Password(label string) (string, error) {
	if !interactive() {
		return "", ErrNotInteractive
	}

	fmt.Fprintf(os.Stderr, "%s: ", label)
	bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr) // New line after password input
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}

// doneLabel ends filling selection
const doneLabel = "✓ Done"

// Burger asks for a bun, then fillings until the user picks Done
func (promptPicker) Burger(catalog []models.Ingredient) ([]string, error) {
	if !interactive() {
		return nil, ErrNotInteractive
	}

	var buns, fillings []models.Ingredient
	for _, ing := range catalog {
		if ing.Type == models.IngredientBun {
			buns = append(buns, ing)
		} else {
			fillings = append(fillings, ing)
		}
	}
	if len(buns) == 0 {
		return nil, fmt.Errorf("the catalog has no buns")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Name | cyan }} ({{ .Price }})",
		Inactive: "  {{ .Name }} ({{ .Price }})",
		Selected: "{{ .Name | green }}",
	}

	bunPrompt := promptui.Select{
		Label:     "Select a bun",
		Items:     buns,
		Templates: templates,
		Size:      10,
	}
	index, _, err := bunPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("ingredient selection cancelled: %w", err)
	}
	bun := buns[index]

	items := append([]models.Ingredient{{Name: doneLabel}}, fillings...)
	var chosen []string
	for {
		fillingPrompt := promptui.Select{
			Label:     fmt.Sprintf("Add a filling (%d so far)", len(chosen)),
			Items:     items,
			Templates: templates,
			Size:      10,
		}
		index, _, err := fillingPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("ingredient selection cancelled: %w", err)
		}
		if index == 0 {
			break
		}
		chosen = append(chosen, items[index].ID)
	}

	if len(chosen) == 0 {
		return nil, fmt.Errorf("a burger needs at least one filling")
	}

	ids := append([]string{bun.ID}, chosen...)
	return append(ids, bun.ID), nil
}
