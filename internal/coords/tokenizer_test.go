package coords

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize_Classification(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  Kind
		coord Coordinate
		delim string
	}{
		{name: "empty", line: "   ", kind: KindIgnorable},
		{name: "hash comment", line: "# 1,2", kind: KindIgnorable},
		{name: "slash comment", line: "// 1,2,3", kind: KindIgnorable},
		{name: "ideographic marker", line: "第1组", kind: KindGroupMarker},
		{name: "english marker", line: "Group A", kind: KindGroupMarker},
		{name: "lowercase marker", line: "group 2", kind: KindGroupMarker},
		{name: "marker with number suffix", line: "Group1", kind: KindGroupMarker},
		{name: "comma 2d", line: "447677.9778, 2491585.3947", kind: KindCoordinate,
			coord: Coordinate{X: 447677.9778, Y: 2491585.3947}, delim: "comma"},
		{name: "comma 3d", line: "1,2,3", kind: KindCoordinate, coord: Coordinate{1, 2, 3}, delim: "comma"},
		{name: "ideographic comma", line: "1，2，3", kind: KindCoordinate, coord: Coordinate{1, 2, 3}, delim: "comma"},
		{name: "trailing comma", line: "1,2,", kind: KindCoordinate, coord: Coordinate{1, 2, 0}, delim: "comma"},
		{name: "tab", line: "1\t2\t3", kind: KindCoordinate, coord: Coordinate{1, 2, 3}, delim: "tab"},
		{name: "space run", line: "1    -2", kind: KindCoordinate, coord: Coordinate{1, -2, 0}, delim: "space"},
		{name: "mixed whitespace", line: "1 \t 2", kind: KindCoordinate, coord: Coordinate{1, 2, 0}, delim: "space"},
		{name: "semicolon", line: "1;2;3", kind: KindCoordinate, coord: Coordinate{1, 2, 3}, delim: "semicolon"},
		{name: "ideographic semicolon", line: "1；2", kind: KindCoordinate, coord: Coordinate{1, 2, 0}, delim: "semicolon"},
		{name: "exponent", line: "1.5e3,-2E-2", kind: KindCoordinate, coord: Coordinate{1500, -0.02, 0}, delim: "comma"},
		{name: "signed", line: "+1.,-.5", kind: KindCoordinate, coord: Coordinate{1, -0.5, 0}, delim: "comma"},
		{name: "letters", line: "abc,def", kind: KindUnparsed},
		{name: "single number", line: "42", kind: KindUnparsed},
		{name: "four numbers", line: "1,2,3,4", kind: KindUnparsed},
		{name: "mixed delimiters", line: "1,2;3", kind: KindUnparsed},
		{name: "overflow", line: "1e400,2,3", kind: KindRejected},
		{name: "beyond limit", line: "2e10,1", kind: KindRejected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Tokenize(tt.line, DefaultLimit)
			require.Equal(t, tt.kind, tok.Kind, "line %q", tt.line)
			if tt.kind == KindCoordinate {
				assert.Equal(t, tt.coord, tok.Coord)
				assert.Equal(t, tt.delim, tok.Delimiter)
			}
			if tt.kind == KindGroupMarker {
				assert.Equal(t, tt.line, tok.Name)
			}
		})
	}
}

func TestTokenize_FieldCount(t *testing.T) {
	assert.Equal(t, 2, Tokenize("1,2", 0).Fields)
	assert.Equal(t, 3, Tokenize("1,2,0", 0).Fields)
}

func TestTokenize_RejectReasons(t *testing.T) {
	tok := Tokenize("1e400,2,3", DefaultLimit)
	assert.ErrorIs(t, tok.Err, ErrOutOfRange)

	tok = Tokenize("abc,def", DefaultLimit)
	assert.ErrorIs(t, tok.Err, ErrNoPattern)
}

func TestTokenize_CustomLimit(t *testing.T) {
	assert.Equal(t, KindCoordinate, Tokenize("100,100", 100).Kind)
	assert.Equal(t, KindRejected, Tokenize("100.5,0", 100).Kind)
	assert.Equal(t, KindRejected, Tokenize("0,0,-101", 100).Kind)
}

func TestTokenize_ValueRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 447677.9778, 2491585.3947, 1e-7, 123456789.123456, -9.999e9} {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		tok := Tokenize(s+","+s, DefaultLimit)
		require.Equal(t, KindCoordinate, tok.Kind, s)
		assert.Equal(t, v, tok.Coord.X)
		assert.Equal(t, v, tok.Coord.Y)
	}
}

func TestIsClosed(t *testing.T) {
	square := []Coordinate{{0, 0, 0}, {100, 0, 0}, {100, 100, 0}, {0, 100, 0}, {0, 0, 0}}
	assert.True(t, IsClosed(square, DefaultEpsilon))

	nearly := append([]Coordinate(nil), square...)
	nearly[len(nearly)-1] = Coordinate{X: 0.0005, Y: -0.0009}
	assert.True(t, IsClosed(nearly, DefaultEpsilon))

	open := append([]Coordinate(nil), square...)
	open[len(open)-1] = Coordinate{X: 0.01, Y: 0}
	assert.False(t, IsClosed(open, DefaultEpsilon))

	zOnly := append([]Coordinate(nil), square...)
	zOnly[len(zOnly)-1] = Coordinate{Z: 50}
	assert.True(t, IsClosed(zOnly, DefaultEpsilon), "z must not affect closure")

	assert.False(t, IsClosed([]Coordinate{{1, 1, 0}, {1, 1, 0}}, DefaultEpsilon))
	assert.False(t, IsClosed([]Coordinate{{1, 1, 0}}, DefaultEpsilon))
	assert.False(t, IsClosed(nil, DefaultEpsilon))

	assert.True(t, IsClosed(open, 0.1), "custom epsilon")
}

func TestIsClosed_ZeroEpsilonIsExact(t *testing.T) {
	square := []Coordinate{{0, 0, 0}, {100, 0, 0}, {100, 100, 0}, {0, 100, 0}, {0, 0, 0}}
	assert.True(t, IsClosed(square, 0))

	nearly := append([]Coordinate(nil), square...)
	nearly[len(nearly)-1] = Coordinate{X: 0.0005}
	assert.False(t, IsClosed(nearly, 0), "zero tolerance must not fall back to the default")
	assert.True(t, IsClosed(nearly, -1), "negative tolerance selects the default")
}
