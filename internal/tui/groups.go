package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"coord2cad/internal/coords"
)

func groupColumns() []table.Column {
	return []table.Column{
		{Title: "sel", Width: 4},
		{Title: "#", Width: 4},
		{Title: "group", Width: 24},
		{Title: "points", Width: 8},
		{Title: "shape", Width: 7},
	}
}

// refreshGroups rebuilds the group table from the current result. Every
// group starts selected.
func (m *Model) refreshGroups() {
	m.selected = map[string]bool{}
	if m.out == nil || m.out.Result == nil {
		m.tbl.SetRows(nil)
		return
	}
	for _, g := range m.out.Result.NonEmptyGroups() {
		m.selected[g.Name] = true
	}
	m.syncGroupRows()
}

func (m *Model) syncGroupRows() {
	if m.out == nil || m.out.Result == nil {
		m.tbl.SetRows(nil)
		return
	}
	groups := m.out.Result.NonEmptyGroups()
	rows := make([]table.Row, 0, len(groups))
	for i, g := range groups {
		mark := "[ ]"
		if m.selected[g.Name] {
			mark = "[x]"
		}
		shape := "open"
		if coords.IsClosed(g.Coords, m.cfg.Epsilon) {
			shape = "closed"
		}
		rows = append(rows, table.Row{mark, strconv.Itoa(i + 1), g.Name, strconv.Itoa(g.Len()), shape})
	}
	m.tbl.SetRows(rows)
}

// toggleGroup flips the selection of the row under the cursor.
func (m *Model) toggleGroup() {
	row := m.tbl.SelectedRow()
	if len(row) < 3 {
		return
	}
	name := row[2]
	m.selected[name] = !m.selected[name]
	m.syncGroupRows()
	m.status = fmt.Sprintf("%d of %d groups selected", len(m.selectedNames()), len(m.tbl.Rows()))
}

func (m *Model) selectAll(on bool) {
	if m.out == nil || m.out.Result == nil {
		return
	}
	for _, g := range m.out.Result.NonEmptyGroups() {
		m.selected[g.Name] = on
	}
	m.syncGroupRows()
	m.status = fmt.Sprintf("%d of %d groups selected", len(m.selectedNames()), len(m.tbl.Rows()))
}

// selectedNames lists the selected groups in document order.
func (m Model) selectedNames() []string {
	if m.out == nil || m.out.Result == nil {
		return nil
	}
	var names []string
	for _, g := range m.out.Result.NonEmptyGroups() {
		if m.selected[g.Name] {
			names = append(names, g.Name)
		}
	}
	return names
}
