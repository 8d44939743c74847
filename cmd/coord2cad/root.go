package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"coord2cad/internal/config"
)

// interactive marks commands that own the terminal; they only log to a file.
const interactive = "interactive"

// app carries state shared by every command.
type app struct {
	v       *viper.Viper
	cfgFile string
	logFile string

	cfg    config.Config
	logger zerolog.Logger
	closer io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zerolog.Nop()}
	config.SetDefaults(a.v)

	root := &cobra.Command{
		Use:   "coord2cad [FILE]",
		Short: "coord2cad converts coordinate lists into CAD command scripts",
		Long: `coord2cad reads loosely formatted coordinate text (one x,y[,z] per line,
optionally split into named groups) and writes AutoCAD-style command scripts
drawing polylines, line segments or points.

Without a subcommand the interactive converter is started.`,
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		Annotations:        map[string]string{interactive: "true"},
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE:               a.runTUI,
	}
	f := root.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default ./coord2cad.toml or $HOME/.config/coord2cad/coord2cad.toml)")
	f.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	f.StringVar(&a.logFile, "log-file", "", "append logs to this file")
	_ = a.v.BindPFlag(config.KeyLogLevel, f.Lookup("log-level"))

	root.AddCommand(newConvertCmd(a), newInspectCmd(a), newTUICmd(a), newVersionCmd())
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Load(a.v, a.cfgFile); err != nil {
		return err
	}
	cfg, err := config.FromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	var w io.Writer
	switch {
	case a.logFile != "":
		f, err := os.OpenFile(a.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closer = f
		w = f
	case cmd.Annotations[interactive] == "true":
		// logs would corrupt the alt screen
		a.logger = zerolog.Nop()
		return nil
	default:
		w = zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.RFC3339}
	}
	a.logger = zerolog.New(w).With().Timestamp().Logger().Level(cfg.LogLevel)
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("path", used).Msg("loaded config")
	}
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}
