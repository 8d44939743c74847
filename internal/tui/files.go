package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"coord2cad/internal/geom"
	"coord2cad/internal/textio"
)

// supported lists the extensions shown in the file sidebar.
var supported = map[string]bool{
	".txt": true, ".csv": true, ".dat": true, ".xyz": true,
	".wkt": true, ".geojson": true, ".json": true, ".kml": true,
}

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if supported[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no coordinate files in current directory"
	}
}

// loadPath reads a file, turns structured formats into a coordinate
// document and converts it.
func (m *Model) loadPath(p string) tea.Cmd {
	doc, err := textio.ReadFile(p, m.cfg.MaxInputBytes(), m.logger)
	if err != nil {
		m.status = "load error: " + err.Error()
		return nil
	}
	text, format, err := geom.Import(p, doc.Text)
	if err != nil {
		m.status = fmt.Sprintf("%s error: %v", format, err)
		return nil
	}
	m.selPath = p
	m.source = filepath.Base(p)
	m.input = text
	m.out = nil
	cmd := m.convert()
	if m.out != nil {
		m.status = fmt.Sprintf("loaded %s (%s, %s)  %s", m.source, format, doc.Encoding, m.status)
		if doc.Large {
			m.status += "  [large file]"
		}
	}
	return cmd
}
