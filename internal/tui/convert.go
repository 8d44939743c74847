package tui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"coord2cad/internal/cadgen"
	"coord2cad/internal/clipboard"
	"coord2cad/internal/coords"
	"coord2cad/internal/geom"
	"coord2cad/internal/textio"
)

// copyDoneMsg reports the outcome of a background clipboard write.
type copyDoneMsg struct {
	what string
	err  error
}

// copyCmd writes text to s when the runtime executes the command, never
// during Update.
func copyCmd(s clipboard.Sink, text, what string) tea.Cmd {
	return func() tea.Msg {
		return copyDoneMsg{what: what, err: s.Write(text)}
	}
}

// convert runs the current input through the converter with the current
// settings. The returned command copies the script when auto copy is on.
func (m *Model) convert() tea.Cmd {
	if strings.TrimSpace(m.input) == "" {
		m.status = "nothing to convert: paste coordinates or open a file"
		return nil
	}
	req := m.cfg.Request()
	out, err := m.conv.Convert(m.input, req)
	if err != nil && !cadgen.IsEmpty(err) {
		m.status = "convert error: " + err.Error()
		return nil
	}
	m.out = out
	m.refreshPreview()
	m.refreshGroups()
	m.vp.SetContent(out.Script.String())
	m.vp.GotoTop()
	if err != nil {
		m.status = cadgen.NoDataMessage + "  " + out.Summary.String()
		return nil
	}
	m.status = out.Summary.String()
	if m.cfg.AutoCopy && m.sink != nil {
		return copyCmd(m.sink, out.Script.String(), "script")
	}
	return nil
}

// reconvert refreshes the output after a settings change, if there is one.
func (m *Model) reconvert() tea.Cmd {
	if m.out == nil {
		return nil
	}
	return m.convert()
}

func (m *Model) refreshPreview() {
	m.data = geom.Data{}
	if m.out == nil || m.out.Result == nil || m.out.Result.Len() == 0 {
		return
	}
	style := geom.StylePath
	switch m.cfg.Primitive {
	case cadgen.Point:
		style = geom.StylePoints
	case cadgen.Line:
		style = geom.StyleSegments
	}
	groups := []coords.Group{{Coords: m.out.Result.Flat}}
	if m.out.Grouped {
		groups = m.out.Result.NonEmptyGroups()
	}
	m.data = geom.FromGroups(groups, style, m.cfg.Epsilon)
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.showPolys = len(m.data.Polygons) > 0
	m.showLines = len(m.data.Lines) > 0
	m.showPoints = len(m.data.Points) > 0
}

// copyScript copies the whole current script.
func (m *Model) copyScript() tea.Cmd {
	if m.out == nil || m.out.Script.Empty() {
		m.status = "nothing to copy"
		return nil
	}
	if m.sink == nil {
		m.status = "clipboard unavailable"
		return nil
	}
	m.status = "copying script..."
	return copyCmd(m.sink, m.out.Script.String(), "script")
}

// copySelected renders only the selected groups and copies them.
func (m *Model) copySelected() tea.Cmd {
	if m.out == nil || m.out.Result == nil {
		m.status = "nothing to copy"
		return nil
	}
	names := m.selectedNames()
	if len(names) == 0 {
		m.status = "no groups selected"
		return nil
	}
	script := cadgen.NewGenerator(m.cfg.Options()).GenerateSelected(m.out.Result.NonEmptyGroups(), names)
	if script.Empty() {
		m.status = "selected groups have no coordinates"
		return nil
	}
	if m.sink == nil {
		m.status = "clipboard unavailable"
		return nil
	}
	m.status = fmt.Sprintf("copying %d groups...", len(names))
	return copyCmd(m.sink, script.String(), fmt.Sprintf("%d groups", len(names)))
}

// save writes the script next to the source file, or into the working
// directory for pasted input.
func (m *Model) save() {
	if m.out == nil || m.out.Script.Empty() {
		m.status = "nothing to save"
		return
	}
	path := m.scriptPath()
	if err := textio.WriteScript(path, m.out.Script.String()); err != nil {
		m.status = "save error: " + err.Error()
		return
	}
	m.logger.Info().Str("path", path).Msg("script saved")
	m.status = "saved " + path
}

func (m Model) scriptPath() string {
	if m.selPath == "" {
		return filepath.Join(m.cwd, "coord2cad.scr")
	}
	return strings.TrimSuffix(m.selPath, filepath.Ext(m.selPath)) + ".scr"
}

// clear drops the input, the output and the preview.
func (m *Model) clear() {
	m.input = ""
	m.source = ""
	m.selPath = ""
	m.out = nil
	m.data = geom.Data{}
	m.selected = map[string]bool{}
	m.tbl.SetRows(nil)
	m.vp.SetContent("")
	m.inspectPopup = ""
	m.status = "cleared"
}

func copyStatus(msg copyDoneMsg) string {
	switch {
	case msg.err == nil:
		return "copied " + msg.what + " to clipboard"
	case errors.Is(msg.err, clipboard.ErrUnsupported):
		return "clipboard unavailable on this system"
	default:
		return "copy failed: " + msg.err.Error()
	}
}
