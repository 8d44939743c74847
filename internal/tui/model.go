package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	viewport "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"coord2cad/internal/cadgen"
	"coord2cad/internal/clipboard"
	"coord2cad/internal/config"
	"coord2cad/internal/geom"
)

// Options configures a Model.
type Options struct {
	Config config.Config
	Logger zerolog.Logger
	// Sink receives copied scripts. A nil Sink disables copying.
	Sink clipboard.Sink
	// Preview enables the braille preview; without it the script is shown
	// in the main area.
	Preview bool
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Conversion
	cfg    config.Config
	conv   *cadgen.Converter
	sink   clipboard.Sink
	logger zerolog.Logger
	input  string
	source string
	out    *cadgen.Output

	// Preview
	preview bool
	data    geom.Data
	mapW    int
	mapH    int

	// script view
	showScript bool
	vp         viewport.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// annotation height prompt
	heightMode bool
	ti         textinput.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverMicX  int
	hoverMicY  int
	hoverHasXY bool
	hoverX     float64
	hoverY     float64

	// group table
	showGroups bool
	tbl        table.Model
	selected   map[string]bool

	initCmd tea.Cmd
}

func New(opts Options) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "coord2cad ready: p to paste coordinates, Tab to open a file",
		cfg:         opts.Config,
		conv:        cadgen.NewConverter(opts.Logger),
		sink:        opts.Sink,
		logger:      opts.Logger,
		preview:     opts.Preview,
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		selected:    map[string]bool{},
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste coordinates (x,y[,z] per line, optional group lines). Ctrl+S to convert; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// text height prompt
	m.ti = textinput.New()
	m.ti.Prompt = "text height: "
	m.ti.CharLimit = 16
	m.ti.Width = 12
	m.vp = viewport.New(0, 0)
	m.tbl = table.New(table.WithFocused(true), table.WithColumns(groupColumns()))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads and converts a file at launch.
func NewWithPath(opts Options, path string) Model {
	m := New(opts)
	m.initCmd = m.loadPath(path)
	return m
}

// Init returns the auto copy started by NewWithPath, if any.
func (m Model) Init() tea.Cmd { return m.initCmd }
