package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"coord2cad/internal/cadgen"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	mapX, _, mapWidth, mapHeight := m.mapRect()
	contentWidth := max(10, m.width)

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, mapHeight-2)
	}

	// Header: title and current settings
	header := titleStyle.Render(" coord2cad ─ coordinates to CAD script ")
	header = lipgloss.NewStyle().Width(contentWidth).Render(header)
	settings := lipgloss.NewStyle().Width(contentWidth).Render(m.renderSettings())

	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	m.mapW = max(8, mapWidth)
	m.mapH = max(4, mapHeight)
	var main string
	switch {
	case m.pasteMode:
		m.ta.SetWidth(m.mapW)
		m.ta.SetHeight(m.mapH)
		main = m.ta.View()
	case m.heightMode:
		main = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, boxStyle.Render(m.ti.View()))
	case m.showGroups:
		m.tbl.SetWidth(min(mapWidth-4, 60))
		m.tbl.SetHeight(min(mapHeight-2, 20))
		main = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, boxStyle.Render(m.tbl.View()))
	case m.showScript || !m.preview:
		m.vp.Width = m.mapW
		m.vp.Height = m.mapH
		if m.out == nil {
			main = dimStyle.Render("no script yet")
		} else {
			main = m.vp.View()
		}
	case m.data.Empty():
		msg := "no preview"
		if m.out != nil {
			msg = cadgen.NoDataMessage
		}
		main = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, dimStyle.Render(msg))
	default:
		main = m.renderPreview(m.mapW, m.mapH)
	}
	mapView := lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).MaxHeight(mapHeight).Render(main)

	// inspect popup overlays the main area
	if m.inspectPopup != "" && m.previewVisible() {
		maxPopupW := max(20, min(48, contentWidth/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar && mapX > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status, help and pointer position
	status := " " + truncate(m.status, contentWidth-2) + " "
	if m.out != nil && m.out.Summary.Skipped > 0 {
		status = warnStyle.Render(status)
	} else {
		status = dimStyle.Render(status)
	}
	pos := ""
	if m.hoverHasXY {
		pos = dimStyle.Render(fmt.Sprintf("  x=%s y=%s  ", cadgen.FormatNumber(round3(m.hoverX)), cadgen.FormatNumber(round3(m.hoverY))))
	}
	help := m.renderHelp()
	spacerW := max(0, contentWidth-lipgloss.Width(help)-lipgloss.Width(pos))
	helpRow := lipgloss.JoinHorizontal(lipgloss.Bottom, padRight(help, spacerW), pos)
	footer := lipgloss.JoinVertical(lipgloss.Left, status, helpRow)

	ui := lipgloss.JoinVertical(lipgloss.Left, header, settings, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderSettings() string {
	src := m.source
	if src == "" {
		src = "-"
	}
	parts := []string{
		"type " + settingStyle.Render(m.cfg.Primitive.String()),
		"annotate " + settingStyle.Render(onOff(m.cfg.Annotate)),
		"height " + settingStyle.Render(cadgen.FormatNumber(m.cfg.TextHeight)),
		"groups " + settingStyle.Render(onOff(m.cfg.GroupMode)),
		"auto copy " + settingStyle.Render(onOff(m.cfg.AutoCopy)),
		"source " + settingStyle.Render(src),
	}
	return dimStyle.Render(" ") + strings.Join(parts, dimStyle.Render("  │  "))
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"c convert",
		"1/2/3 pline/line/point",
		"t annotate",
		"e height",
		"g groups",
		"a select",
		"y copy",
		"s save",
		"v script",
		"p paste",
		"x clear",
		"Tab files",
		"↑↓←→ pan",
		"+/- zoom",
		"i inspect",
		"l layers",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
