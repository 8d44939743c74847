package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"coord2cad/internal/geom"
	"coord2cad/internal/textio"
)

// readInput loads path ("-" reads stdin) and converts structured formats
// into a coordinate document.
func (a *app) readInput(cmd *cobra.Command, path string) (string, error) {
	var doc textio.Document
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text, enc, err := textio.Decode(b)
		if err != nil {
			return "", err
		}
		doc = textio.Document{Path: path, Text: text, Encoding: enc, Size: int64(len(b))}
	} else {
		var err error
		if doc, err = textio.ReadFile(path, a.cfg.MaxInputBytes(), a.logger); err != nil {
			return "", err
		}
	}
	text, format, err := geom.Import(path, doc.Text)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", path, format, err)
	}
	a.logger.Debug().Str("path", path).Str("format", string(format)).Str("encoding", string(doc.Encoding)).Msg("input ready")
	return text, nil
}
