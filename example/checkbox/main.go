// Package main demonstrates the standalone list prompts.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/nao1215/inquire"
)

func main() {
	ctx := context.Background()

	toppings, err := inquire.Checkbox(ctx, nil, inquire.CheckboxConfig{
		Common: inquire.Common{Message: "Select toppings", Theme: inquire.ThemeDracula},
		Choices: inquire.NewChoices([]any{
			inquire.NewSeparator(" = The Meats = "),
			"Pepperoni",
			"Ham",
			inquire.Choice{Name: "Ground Meat", Disabled: "out of stock"},
			inquire.NewSeparator(" = The Cheeses = "),
			inquire.Choice{Name: "Mozzarella", Checked: true},
			"Cheddar",
			"Parmesan",
			inquire.NewSeparator(" = The extras = "),
			"Mushroom",
			"Olives",
			"Extra cheese",
		}, nil),
		Validate: func(_ context.Context, values []any) error {
			if len(values) == 0 {
				return errors.New("You must choose at least one topping")
			}
			return nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	crust, err := inquire.Expand(ctx, nil, inquire.ExpandConfig{
		Common: inquire.Common{Message: "Which crust?", Theme: inquire.ThemeDracula},
		Choices: inquire.NewChoices([]any{
			inquire.Choice{Key: "t", Name: "Thin", Value: "thin"},
			inquire.Choice{Key: "c", Name: "Classic", Value: "classic"},
			inquire.Choice{Key: "s", Name: "Stuffed", Value: "stuffed"},
		}, nil),
		Default: 1,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Toppings: %v\nCrust: %v\n", toppings, crust)
}
