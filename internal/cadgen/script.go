package cadgen

import "strings"

// NoDataMessage is the text of a script generated from no coordinates. It is
// not machine consumable; check Script.Empty before sending a script on.
const NoDataMessage = "no valid coordinate data"

// DirectiveKind tags one output line.
type DirectiveKind int

const (
	DirComment DirectiveKind = iota
	DirCommand
	DirVertex
	DirClose
	DirEnd
	DirBlank
)

func (k DirectiveKind) String() string {
	switch k {
	case DirComment:
		return "comment"
	case DirCommand:
		return "command"
	case DirVertex:
		return "vertex"
	case DirClose:
		return "close"
	case DirEnd:
		return "end"
	case DirBlank:
		return "blank"
	default:
		return "unknown"
	}
}

// Directive is one line of a script.
type Directive struct {
	Kind DirectiveKind
	Text string
}

// Script is an ordered list of directives.
type Script struct {
	Directives []Directive
	empty      bool
}

// NoDataScript returns the sentinel script for empty input.
func NoDataScript() Script { return Script{empty: true} }

// Empty reports whether s is the no-data sentinel.
func (s Script) Empty() bool { return s.empty }

// Count returns how many directives of kind k the script holds.
func (s Script) Count(k DirectiveKind) int {
	n := 0
	for _, d := range s.Directives {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Filter returns the directives of kind k.
func (s Script) Filter(k DirectiveKind) []Directive {
	var out []Directive
	for _, d := range s.Directives {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

func (s Script) String() string {
	if s.empty {
		return NoDataMessage
	}
	lines := make([]string, len(s.Directives))
	for i, d := range s.Directives {
		lines[i] = d.Text
	}
	return strings.Join(lines, "\n")
}

func (s *Script) add(k DirectiveKind, text string) {
	s.Directives = append(s.Directives, Directive{Kind: k, Text: text})
}

func (s *Script) comment(text string) { s.add(DirComment, "# "+text) }

func (s *Script) blank() { s.add(DirBlank, "") }

func (s *Script) extend(o Script) {
	s.Directives = append(s.Directives, o.Directives...)
}
