package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"coord2cad/internal/clipboard"
	"coord2cad/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "tui [FILE]",
		Short:       "Start the interactive converter",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{interactive: "true"},
		RunE:        a.runTUI,
	}
}

// previewSupported reports whether stdout is a terminal that can show the
// braille preview.
func previewSupported(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (a *app) runTUI(_ *cobra.Command, args []string) error {
	opts := tui.Options{
		Config:  a.cfg,
		Logger:  a.logger,
		Sink:    clipboard.NewSystemSink(a.logger),
		Preview: a.cfg.Preview && previewSupported(os.Stdout.Fd()),
	}
	var m tea.Model
	if len(args) > 0 {
		m = tui.NewWithPath(opts, args[0])
	} else {
		m = tui.New(opts)
	}
	a.logger.Info().Bool("preview", opts.Preview).Msg("starting interactive converter")
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
