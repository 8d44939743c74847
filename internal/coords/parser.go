package coords

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultGroupName names the group that collects coordinates appearing
// before any marker line.
const DefaultGroupName = "默认组"

const (
	progressEvery  = 1000
	maxLineBytes   = 1 << 20
	longLinePrefix = 64
)

// ErrNoData is returned when a document holds no valid coordinate.
var ErrNoData = errors.New("coords: no valid coordinate data")

// ErrLineTooLong marks a line longer than the parser accepts.
var ErrLineTooLong = errors.New("coords: line too long")

// Warning records a line that was skipped.
type Warning struct {
	Line   int
	Text   string
	Reason Kind
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %q", w.Line, w.Err, w.Text)
}

// Result is the outcome of parsing one document.
//
// Flat always holds every accepted coordinate in document order; Groups is
// an additional view keyed by marker line, in first-seen order.
type Result struct {
	Flat     []Coordinate
	Groups   []Group
	Warnings []Warning
	// Lines counts the lines read, for progress display only.
	Lines int

	index map[string]int
}

// Len returns the number of accepted coordinates.
func (r *Result) Len() int { return len(r.Flat) }

// Is3D reports whether any accepted coordinate has a non-zero Z.
func (r *Result) Is3D() bool { return Is3D(r.Flat) }

// Group looks a group up by name.
func (r *Result) Group(name string) (Group, bool) {
	i, ok := r.index[name]
	if !ok {
		return Group{}, false
	}
	return r.Groups[i], true
}

// NonEmptyGroups returns the groups holding at least one coordinate,
// preserving their order.
func (r *Result) NonEmptyGroups() []Group {
	out := make([]Group, 0, len(r.Groups))
	for _, g := range r.Groups {
		if len(g.Coords) > 0 {
			out = append(out, g)
		}
	}
	return out
}

func (r *Result) ensureGroup(name string) int {
	if i, ok := r.index[name]; ok {
		return i
	}
	r.Groups = append(r.Groups, Group{Name: name})
	r.index[name] = len(r.Groups) - 1
	return len(r.Groups) - 1
}

// Parser walks a document line by line. The zero value is usable and
// applies the package defaults.
type Parser struct {
	Limit        float64
	DefaultGroup string
	Logger       zerolog.Logger
	// Progress, if set, is called every 1000 lines.
	Progress func(lines, valid int)
}

// NewParser returns a Parser with default limit and group name.
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{
		Limit:        DefaultLimit,
		DefaultGroup: DefaultGroupName,
		Logger:       logger,
	}
}

// Parse parses a whole document held in memory.
func (p *Parser) Parse(doc string) (*Result, error) {
	return p.ParseReader(strings.NewReader(doc))
}

// ParseReader parses a document line by line. Malformed lines never abort
// the scan; they are collected as warnings. ErrNoData is returned together
// with the (empty) result when no coordinate was accepted.
func (p *Parser) ParseReader(rd io.Reader) (*Result, error) {
	current := p.DefaultGroup
	if current == "" {
		current = DefaultGroupName
	}
	res := &Result{index: make(map[string]int)}

	br := bufio.NewReaderSize(rd, 64*1024)
	for {
		raw, tooLong, err := readLine(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("coords: read line %d: %w", res.Lines+1, err)
		}
		res.Lines++
		if p.Progress != nil && res.Lines%progressEvery == 0 {
			p.Progress(res.Lines, len(res.Flat))
		}
		var tok Token
		if tooLong {
			tok = Token{Kind: KindUnparsed, Err: ErrLineTooLong}
		} else {
			tok = Tokenize(raw, p.Limit)
		}
		switch tok.Kind {
		case KindIgnorable:
		case KindGroupMarker:
			current = tok.Name
			res.ensureGroup(current)
		case KindCoordinate:
			i := res.ensureGroup(current)
			res.Groups[i].Coords = append(res.Groups[i].Coords, tok.Coord)
			res.Flat = append(res.Flat, tok.Coord)
		default:
			w := Warning{Line: res.Lines, Text: strings.TrimSpace(raw), Reason: tok.Kind, Err: tok.Err}
			res.Warnings = append(res.Warnings, w)
			p.Logger.Warn().Int("line", w.Line).Str("text", w.Text).Str("reason", w.Reason.String()).Err(w.Err).Msg("skipping line")
		}
	}
	p.Logger.Debug().Int("lines", res.Lines).Int("valid", len(res.Flat)).Int("groups", len(res.Groups)).Int("skipped", len(res.Warnings)).Msg("parse finished")
	if len(res.Flat) == 0 {
		return res, ErrNoData
	}
	return res, nil
}

// readLine returns the next line without its terminator. Lines longer than
// maxLineBytes are drained and reported with tooLong set; only a short
// prefix is kept for the warning text. io.EOF is returned once nothing is
// left to read.
func readLine(br *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	read := 0
	for {
		chunk, err := br.ReadSlice('\n')
		read += len(chunk)
		if !tooLong {
			if len(buf)+len(chunk) > maxLineBytes+2 {
				tooLong = true
				buf = append(buf, chunk[:min(len(chunk), longLinePrefix)]...)
				if len(buf) > longLinePrefix {
					buf = buf[:longLinePrefix]
				}
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF && read == 0 {
			return "", false, io.EOF
		}
		if err != nil && err != io.EOF {
			return "", false, err
		}
		break
	}
	if !tooLong {
		buf = trimEOL(buf)
		if len(buf) > maxLineBytes {
			tooLong = true
			buf = buf[:longLinePrefix]
		}
	}
	return string(buf), tooLong, nil
}

func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
		if n := len(b); n > 0 && b[n-1] == '\r' {
			b = b[:n-1]
		}
	}
	return b
}
