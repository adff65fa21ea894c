// Package main demonstrates a small questionnaire built in code.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/nao1215/inquire"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	in := inquire.New()
	answers, err := in.Prompt(ctx,
		inquire.Question{
			Name:    "name",
			Message: "What's your name?",
			Validate: func(_ context.Context, v any, _ inquire.Answers) error {
				if strings.TrimSpace(fmt.Sprint(v)) == "" {
					return errors.New("Please tell us your name")
				}
				return nil
			},
		},
		inquire.Question{
			Type:    "confirm",
			Name:    "delivery",
			Message: "Is this for delivery?",
			Default: false,
		},
		inquire.Question{
			Type:    "input",
			Name:    "address",
			Message: "Where should we deliver?",
			When: func(a inquire.Answers) bool {
				delivery, _ := a["delivery"].(bool)
				return delivery
			},
		},
		inquire.Question{
			Type:    "list",
			Name:    "size",
			Message: "What size do you need?",
			Choices: []any{"Large", "Medium", "Small"},
			Default: "Medium",
		},
		inquire.Question{
			Type:    "number",
			Name:    "quantity",
			Message: "How many do you need?",
			Default: 1,
		},
		inquire.Question{
			Type:    "password",
			Name:    "coupon",
			Message: "Coupon code (optional):",
			Mask:    "*",
		},
	)
	if err != nil {
		if errors.Is(err, inquire.ErrInterrupted) || errors.Is(err, inquire.ErrEOF) {
			fmt.Println("Goodbye!")
			return
		}
		log.Fatal(err)
	}

	fmt.Println()
	fmt.Println("Order receipt:")
	for _, key := range []string{"name", "delivery", "address", "size", "quantity"} {
		if v, ok := answers.Get(key); ok {
			fmt.Printf("  %-9s %v\n", key+":", v)
		}
	}
}
