package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"coord2cad/internal/cadgen"
	"coord2cad/internal/clipboard"
	"coord2cad/internal/config"
	"coord2cad/internal/textio"
)

// maxListedWarnings caps the skipped lines echoed to stderr.
const maxListedWarnings = 20

type convertFlags struct {
	groups     []string
	noComments bool
	output     string
	copy       bool
}

func newConvertCmd(a *app) *cobra.Command {
	var fl convertFlags
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a coordinate file into a CAD script",
		Long: `Convert reads FILE ("-" for stdin) and prints the generated script.

Plain text, CSV, WKT, GeoJSON and KML inputs are accepted. Lines that hold no
usable coordinate are skipped and reported on stderr.`,
		Example: `  coord2cad convert points.txt --type pline -o points.scr
  coord2cad convert survey.txt --group --groups "第1组,第3组" --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.convert(cmd, args[0], fl)
		},
	}
	f := cmd.Flags()
	f.StringP("type", "t", "line", "primitive to draw: pline, line or point")
	f.Bool("annotate", false, "label every vertex with its index")
	f.String("text-height", "5", "label text height")
	f.BoolP("group", "g", false, "emit one block per group")
	f.StringSliceVar(&fl.groups, "groups", nil, "only these groups (implies --group)")
	f.BoolVar(&fl.noComments, "no-comments", false, "omit header comments")
	f.StringVarP(&fl.output, "output", "o", "", "write the script to this file instead of stdout")
	f.BoolVar(&fl.copy, "copy", false, "also copy the script to the clipboard")

	_ = a.v.BindPFlag(config.KeyPrimitive, f.Lookup("type"))
	_ = a.v.BindPFlag(config.KeyAnnotate, f.Lookup("annotate"))
	_ = a.v.BindPFlag(config.KeyAnnotationHeight, f.Lookup("text-height"))
	_ = a.v.BindPFlag(config.KeyGroupMode, f.Lookup("group"))
	return cmd
}

func (a *app) convert(cmd *cobra.Command, path string, fl convertFlags) error {
	text, err := a.readInput(cmd, path)
	if err != nil {
		return err
	}
	req := a.cfg.Request()
	if fl.noComments {
		req.Options.Comments = false
	}
	if len(fl.groups) > 0 {
		req.GroupMode = true
		req.Selected = fl.groups
	}
	req.Progress = func(lines, valid int) {
		a.logger.Debug().Int("lines", lines).Int("valid", valid).Msg("parsing")
	}

	out, err := cadgen.NewConverter(a.logger).Convert(text, req)
	if out != nil {
		reportWarnings(cmd.ErrOrStderr(), out)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	script := out.Script.String()
	if fl.output != "" {
		if err := textio.WriteScript(fl.output, script+"\n"); err != nil {
			return err
		}
		a.logger.Info().Str("path", fl.output).Msg("script written")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), script)
	}

	if fl.copy {
		if err := <-clipboard.CopyAsync(clipboard.NewSystemSink(a.logger), script); err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "copied to clipboard")
	}
	return nil
}

func reportWarnings(w io.Writer, out *cadgen.Output) {
	if out.Result != nil {
		for i, wn := range out.Result.Warnings {
			if i == maxListedWarnings {
				fmt.Fprintf(w, "... %d more skipped lines\n", len(out.Result.Warnings)-i)
				break
			}
			fmt.Fprintln(w, "skipped "+wn.String())
		}
	}
	fmt.Fprintln(w, out.Summary.String())
}
