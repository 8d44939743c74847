package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"coord2cad/internal/cadgen"
	"coord2cad/internal/coords"
	"coord2cad/internal/geom"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0EA5E9"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Report groups, extents and skipped lines of a coordinate file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inspect(cmd, args[0])
		},
	}
}

func (a *app) inspect(cmd *cobra.Command, path string) error {
	text, err := a.readInput(cmd, path)
	if err != nil {
		return err
	}
	p := &coords.Parser{Limit: a.cfg.Limit, DefaultGroup: a.cfg.DefaultGroup, Logger: a.logger}
	res, err := p.Parse(text)
	if err != nil && !errors.Is(err, coords.ErrNoData) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderReport(path, res, a.cfg.Epsilon))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func renderReport(path string, res *coords.Result, eps float64) string {
	dims := "2D"
	if res.Is3D() {
		dims = "3D"
	}
	summary := cadgen.Summary{
		Lines:   res.Lines,
		Valid:   res.Len(),
		Skipped: len(res.Warnings),
		Groups:  len(res.NonEmptyGroups()),
		Is3D:    res.Is3D(),
	}
	out := titleStyle.Render(path) + "\n" + dimStyle.Render(summary.String()) + "\n"
	if res.Len() == 0 {
		return out + warnStyle.Render(cadgen.NoDataMessage)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("#", "group", "points", "dims", "shape", "min x,y", "max x,y")
	for i, g := range res.NonEmptyGroups() {
		gd := "2D"
		if coords.Is3D(g.Coords) {
			gd = "3D"
		}
		shape := "open"
		if coords.IsClosed(g.Coords, eps) {
			shape = "closed"
		}
		b, _ := geom.Bounds(g.Coords)
		t.Row(
			strconv.Itoa(i+1),
			g.Name,
			strconv.Itoa(g.Len()),
			gd,
			shape,
			cadgen.FormatNumber(b.MinX)+","+cadgen.FormatNumber(b.MinY),
			cadgen.FormatNumber(b.MaxX)+","+cadgen.FormatNumber(b.MaxY),
		)
	}
	out += t.Render() + "\n"

	b, _ := geom.Bounds(res.Flat)
	out += fmt.Sprintf("%s %s  extent %s x %s\n", dims, dimStyle.Render("overall"),
		cadgen.FormatNumber(b.Width()), cadgen.FormatNumber(b.Height()))
	for _, w := range res.Warnings {
		out += warnStyle.Render("skipped "+w.String()) + "\n"
	}
	return out
}
