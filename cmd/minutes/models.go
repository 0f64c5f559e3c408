package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

type modelEntry struct {
	Name    string       `json:"name" yaml:"name"`
	Kind    ai.ModelKind `json:"kind" yaml:"kind"`
	Path    string       `json:"path" yaml:"path"`
	Default bool         `json:"default" yaml:"default"`
}

func newModelsCommand(deps *commandDeps, root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "models",
		Short:   "List the text generation model presets",
		Aliases: []string{"model"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(deps, root, cmd.OutOrStdout())
		},
	}
}

func runModels(deps *commandDeps, root *rootOptions, stdout io.Writer) error {
	format, err := root.format()
	if err != nil {
		return err
	}
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	current, err := ai.ParseModel(cfg.LLM.Model)
	if err != nil {
		return fmt.Errorf("invalid LLM_MODEL: %w", err)
	}

	var entries []modelEntry
	for _, p := range ai.Presets() {
		entries = append(entries, modelEntry{
			Name:    p.Name,
			Kind:    p.Kind,
			Path:    p.Path,
			Default: p.Path == current.Path(),
		})
	}
	if current.Kind == ai.ModelCustom {
		entries = append(entries, modelEntry{
			Name:    current.Name(),
			Kind:    current.Kind,
			Path:    current.Path(),
			Default: true,
		})
	}

	if format != OutputFormatText {
		return writeStructured(stdout, format, entries)
	}

	fmt.Fprintln(stdout, "  NAME                     KIND     PATH")
	fmt.Fprintln(stdout, "  ----                     ----     ----")
	for _, e := range entries {
		marker := " "
		if e.Default {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %-24s %-8s %s\n", marker, e.Name, e.Kind, e.Path)
	}
	return nil
}
