package main

import (
	"errors"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	adapter "github.com/ionut-t/codepad/adapter-bubbletea"
	"github.com/ionut-t/codepad/project"
	"github.com/ionut-t/codepad/store"
	"github.com/spf13/cobra"
)

func init() {
	// Query the terminal background before the program owns stdin, so the
	// OSC 11 reply does not leak into the buffer as typed text.
	_ = lipgloss.HasDarkBackground()
}

var version = "dev"

type options struct {
	configFile   string
	language     string
	theme        string
	debugLog     string
	noWatch      bool
	historyLimit int
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "codepad [file]",
		Short:   "A small terminal code editor",
		Long:    `A terminal code editor with soft wrapping, undo/redo, format on save and a project build command.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return run(opts, file)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "",
		"project config file (default: "+project.DefaultFileName+" next to the file)")
	cmd.Flags().StringVarP(&opts.language, "lang", "l", "",
		"syntax highlighting language (default: picked from the file name)")
	cmd.Flags().StringVar(&opts.theme, "theme", "monokai",
		"syntax highlighting theme")
	cmd.Flags().StringVar(&opts.debugLog, "debug", "",
		"write debug logs to this file")
	cmd.Flags().BoolVar(&opts.noWatch, "no-watch", false,
		"do not reload the file when it changes on disk")
	cmd.Flags().IntVar(&opts.historyLimit, "history", 0,
		"maximum undo steps (default 100)")

	return cmd
}

func run(opts *options, file string) error {
	if opts.debugLog != "" {
		f, err := tea.LogToFile(opts.debugLog, "codepad")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		// The alt screen owns the terminal; stray log lines would corrupt it.
		log.SetOutput(io.Discard)
	}

	cfg, err := project.Load(nil, project.Find(opts.configFile, file))
	if err != nil && !errors.Is(err, project.ErrNotFound) {
		return err
	}

	modelOpts := adapter.Options{
		Project:      cfg,
		Language:     opts.language,
		Theme:        opts.theme,
		HistoryLimit: opts.historyLimit,
		Watch:        !opts.noWatch && file != "",
	}
	if file != "" {
		modelOpts.Store = store.NewFileStore(nil, file)
	}

	model, err := adapter.New(80, 24, modelOpts)
	if err != nil {
		return fmt.Errorf("opening %s: %w", file, err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}
