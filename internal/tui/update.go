package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"coord2cad/internal/cadgen"
	"coord2cad/internal/coords"
	"coord2cad/internal/config"
)

const sidebarWidth = 28

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-1-2) // provisional; will be refined in View
		}
		_, _, m.mapW, m.mapH = m.mapRect()
		m.vp.Width = m.mapW
		m.vp.Height = m.mapH
	case copyDoneMsg:
		m.status = copyStatus(msg)
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Str("what", msg.what).Msg("copy failed")
		}
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.heightMode {
			return m.updateHeight(msg)
		}
		if m.showGroups {
			return m.updateGroups(msg)
		}
		if m.showScript || !m.preview {
			switch msg.String() {
			case "up", "down", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.vp, cmd = m.vp.Update(msg)
				return m, cmd
			}
		}
		return m.updateKeys(msg)
	case tea.MouseMsg:
		m.updateHover(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "c":
		cmd := m.convert()
		return m, cmd
	case "1", "2", "3":
		m.cfg.Primitive = cadgen.Primitives[msg.String()[0]-'1']
		m.status = "type: " + m.cfg.Primitive.String()
		cmd := m.reconvert()
		return m, cmd
	case "t":
		m.cfg.Annotate = !m.cfg.Annotate
		m.status = fmt.Sprintf("annotate: %v", m.cfg.Annotate)
		cmd := m.reconvert()
		return m, cmd
	case "e":
		m.heightMode = true
		m.ti.SetValue(cadgen.FormatNumber(m.cfg.TextHeight))
		m.ti.CursorEnd()
		m.ti.Focus()
		m.status = "enter text height"
	case "g":
		m.cfg.GroupMode = !m.cfg.GroupMode
		m.status = fmt.Sprintf("group mode: %v", m.cfg.GroupMode)
		cmd := m.reconvert()
		return m, cmd
	case "v":
		m.showScript = !m.showScript
	case "a":
		if m.out == nil || len(m.tbl.Rows()) == 0 {
			m.status = "no groups: convert some coordinates first"
			return m, nil
		}
		m.showGroups = true
		m.tbl.Focus()
		m.status = "space toggle  a all  n none  y copy selected  esc close"
	case "y", "Y":
		cmd := m.copyScript()
		return m, cmd
	case "s":
		m.save()
	case "x":
		m.clear()
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.height-1-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue(m.input)
		m.status = "paste mode"
		m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	case "i":
		m.inspect()
	case "l":
		// toggle all layers
		all := m.showPoints && m.showLines && m.showPolys
		m.showPoints = !all
		m.showLines = !all
		m.showPolys = !all
		m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
	case "esc":
		m.inspectPopup = ""
	case "enter":
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				cmd := m.loadPath(it.path)
				return m, cmd
			}
		}
	case "up":
		m.offsetY -= 1
	case "down":
		m.offsetY += 1
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "paste cancelled"
		return m, nil
	case "ctrl+s":
		text := m.ta.Value()
		if strings.TrimSpace(text) == "" {
			m.status = "paste: empty"
			return m, nil
		}
		m.pasteMode = false
		m.ta.Blur()
		m.input = text
		m.source = "pasted"
		m.selPath = ""
		m.out = nil
		cmd := m.convert()
		return m, cmd
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateHeight(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.heightMode = false
		m.ti.Blur()
		m.status = "text height unchanged"
		return m, nil
	case "enter":
		h, err := config.ParseHeight(m.ti.Value())
		if err != nil {
			m.status = "text height must be a positive number"
			return m, nil
		}
		m.heightMode = false
		m.ti.Blur()
		m.cfg.TextHeight = h
		m.status = "text height: " + cadgen.FormatNumber(h)
		cmd := m.reconvert()
		return m, cmd
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) updateGroups(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "q":
		m.showGroups = false
		m.tbl.Blur()
		m.status = "groups closed"
		return m, nil
	case " ":
		m.toggleGroup()
		return m, nil
	case "a":
		m.selectAll(true)
		return m, nil
	case "n":
		m.selectAll(false)
		return m, nil
	case "y":
		cmd := m.copySelected()
		return m, cmd
	case "Y":
		cmd := m.copyScript()
		return m, cmd
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// inspect reports the vertex nearest to the viewport centre.
func (m *Model) inspect() {
	c, ok := m.inspectNearest()
	if !ok {
		m.inspectPopup = "no coordinate nearby"
		m.status = m.inspectPopup
		return
	}
	name := m.source
	if m.selPath != "" {
		name = filepath.Base(m.selPath)
	}
	if name == "" {
		name = "<none>"
	}
	meta := []string{
		fmt.Sprintf("source: %s", name),
		fmt.Sprintf("bbox: [%s, %s, %s, %s]", cadgen.FormatNumber(m.data.BBox.MinX), cadgen.FormatNumber(m.data.BBox.MinY),
			cadgen.FormatNumber(m.data.BBox.MaxX), cadgen.FormatNumber(m.data.BBox.MaxY)),
		fmt.Sprintf("vertices: %d", m.data.Vertices),
		fmt.Sprintf("nearest: %s", cadgen.FormatVertex(c, m.out.Summary.Is3D)),
		m.out.Summary.String(),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect popup"
}

// inspectNearest finds the accepted coordinate closest to the viewport
// centre.
func (m Model) inspectNearest() (coords.Coordinate, bool) {
	if m.out == nil || m.out.Result == nil || m.out.Result.Len() == 0 {
		return coords.Coordinate{}, false
	}
	w, h := m.mapW, m.mapH
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	cx, cy := w/2, h/2
	bestD := -1
	var best coords.Coordinate
	for _, c := range m.out.Result.Flat {
		sx, sy, ok := m.screenXY(c.X, c.Y, w, h)
		if !ok {
			continue
		}
		dx := sx - cx
		dy := sy - cy
		d := dx*dx + dy*dy
		if bestD < 0 || d < bestD {
			bestD = d
			best = c
		}
	}
	return best, bestD >= 0
}

// updateHover tracks the pointer over the preview and snaps the highlight
// to the nearest drawn vertex.
func (m *Model) updateHover(msg tea.MouseMsg) {
	mapOriginX, mapOriginY, mapWidth, mapHeight := m.mapRect()
	cx, cy := msg.X, msg.Y
	if !m.previewVisible() || cx < mapOriginX || cx >= mapOriginX+mapWidth || cy < mapOriginY || cy >= mapOriginY+mapHeight {
		m.hovering = false
		m.hoverHasXY = false
		return
	}
	m.hovering = true
	m.hoverCellX = cx - mapOriginX
	m.hoverCellY = cy - mapOriginY
	m.hoverX, m.hoverY, m.hoverHasXY = m.cellToWorld(m.hoverCellX, m.hoverCellY, mapWidth, mapHeight)

	hxMic := m.hoverCellX * 2
	hyMic := m.hoverCellY * 4
	best := 1<<31 - 1
	bx, by := hxMic, hyMic
	visit := func(p [2]float64) {
		mx, my, ok := m.screenXYMicro(p[0], p[1], mapWidth, mapHeight)
		if !ok {
			return
		}
		dx := mx - hxMic
		dy := my - hyMic
		if d := dx*dx + dy*dy; d < best {
			best = d
			bx, by = mx, my
		}
	}
	for _, p := range m.data.Points {
		visit(p)
	}
	for _, ls := range m.data.Lines {
		for _, p := range ls {
			visit(p)
		}
	}
	for _, poly := range m.data.Polygons {
		for _, ring := range poly {
			for _, p := range ring {
				visit(p)
			}
		}
	}
	m.hoverMicX, m.hoverMicY = bx, by
}
