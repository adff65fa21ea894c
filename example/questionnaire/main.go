// Package main runs a questionnaire described in a YAML file.
//
//	go run ./example/questionnaire -f example/questionnaire/pizza.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/nao1215/inquire"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type options struct {
	file    string
	logFile string
	theme   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "questionnaire",
		Short:        "Ask the questions of a YAML file and print the answers as YAML",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "questions file (required)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "write debug logs to this file")
	cmd.Flags().StringVar(&opts.theme, "theme", "default", "color theme: default, dracula, accessible or plain")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func run(ctx context.Context, opts *options) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	f, err := os.Open(opts.file)
	if err != nil {
		return err
	}
	defer f.Close()

	questions, err := inquire.LoadQuestions(f)
	if err != nil {
		return err
	}

	theme, err := themeByName(opts.theme)
	if err != nil {
		return err
	}
	inquireOpts := []inquire.Option{inquire.WithTheme(theme)}

	if opts.logFile != "" {
		lf, err := os.Create(opts.logFile)
		if err != nil {
			return err
		}
		defer lf.Close()
		inquireOpts = append(inquireOpts, inquire.WithLogger(log.NewWithOptions(lf, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
		})))
	}

	answers, err := inquire.New(inquireOpts...).Prompt(ctx, questions...)
	if err != nil && !errors.Is(err, inquire.ErrInterrupted) {
		return err
	}

	fmt.Println()
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	if encErr := enc.Encode(map[string]any(answers)); encErr != nil {
		return encErr
	}
	return err
}

func themeByName(name string) (*inquire.Theme, error) {
	switch name {
	case "default":
		return inquire.ThemeDefault, nil
	case "dracula":
		return inquire.ThemeDracula, nil
	case "accessible":
		return inquire.ThemeAccessible, nil
	case "plain":
		return inquire.ThemePlain, nil
	}
	return nil, fmt.Errorf("unknown theme %q", name)
}
