package coords

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultLimit is the largest accepted absolute value for any axis.
const DefaultLimit = 1e10

var (
	ErrNotNumeric = errors.New("coords: field is not a valid number")
	ErrOutOfRange = errors.New("coords: value exceeds coordinate limit")
	ErrNoPattern  = errors.New("coords: no delimiter pattern matched")
)

// Kind classifies a single input line.
type Kind int

const (
	KindIgnorable Kind = iota
	KindGroupMarker
	KindCoordinate
	KindUnparsed // no delimiter pattern matched
	KindRejected // matched, but a value did not parse or was out of range
)

func (k Kind) String() string {
	switch k {
	case KindIgnorable:
		return "ignorable"
	case KindGroupMarker:
		return "group"
	case KindCoordinate:
		return "coordinate"
	case KindUnparsed:
		return "unparsed"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Token is the classification of one line. Coord and Fields are set for
// KindCoordinate, Name for KindGroupMarker and Err for the two failure kinds.
type Token struct {
	Kind      Kind
	Coord     Coordinate
	Fields    int
	Delimiter string
	Name      string
	Err       error
}

const number = `([+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)`

type delimiter struct {
	name string
	re   *regexp.Regexp
}

func delimited(sep, tail string) *regexp.Regexp {
	return regexp.MustCompile(`^` + number + sep + number + `(?:` + sep + number + `)?` + tail + `$`)
}

// Tried in order; the first match wins.
var delimiters = []delimiter{
	{name: "comma", re: delimited(`[ \t]*[,，、][ \t]*`, `[ \t]*[,，、]?`)},
	{name: "tab", re: delimited(`\t`, ``)},
	{name: "space", re: delimited(`[\s\x{3000}]+`, ``)},
	{name: "semicolon", re: delimited(`[ \t]*[;；][ \t]*`, `[ \t]*[;；]?`)},
}

var groupWord = regexp.MustCompile(`(?:^|[^A-Za-z])(?:group|Group|GROUP)`)

// IsComment reports whether line (already trimmed) is empty or a comment.
func IsComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//")
}

// IsGroupMarker reports whether line introduces a new group.
func IsGroupMarker(line string) bool {
	return strings.Contains(line, "组") || groupWord.MatchString(line)
}

// Tokenize classifies one line of input. Values whose absolute value exceeds
// limit are rejected, never clamped; a non-positive limit selects DefaultLimit.
func Tokenize(line string, limit float64) Token {
	line = strings.TrimSpace(line)
	if IsComment(line) {
		return Token{Kind: KindIgnorable}
	}
	if IsGroupMarker(line) {
		return Token{Kind: KindGroupMarker, Name: line}
	}
	if limit <= 0 || math.IsNaN(limit) {
		limit = DefaultLimit
	}
	for _, d := range delimiters {
		m := d.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var vals [3]float64
		n := 0
		for _, field := range m[1:] {
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				var numErr *strconv.NumError
				if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
					return Token{Kind: KindRejected, Delimiter: d.name, Err: ErrOutOfRange}
				}
				return Token{Kind: KindRejected, Delimiter: d.name, Err: ErrNotNumeric}
			}
			if math.IsInf(v, 0) || math.IsNaN(v) || math.Abs(v) > limit {
				return Token{Kind: KindRejected, Delimiter: d.name, Err: ErrOutOfRange}
			}
			vals[n] = v
			n++
		}
		return Token{
			Kind:      KindCoordinate,
			Coord:     Coordinate{X: vals[0], Y: vals[1], Z: vals[2]},
			Fields:    n,
			Delimiter: d.name,
		}
	}
	return Token{Kind: KindUnparsed, Err: ErrNoPattern}
}
