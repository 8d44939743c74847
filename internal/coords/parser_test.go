package coords

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Flat(t *testing.T) {
	p := NewParser(zerolog.Nop())
	res, err := p.Parse("1,2\n3,4\n5,6")
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{{1, 2, 0}, {3, 4, 0}, {5, 6, 0}}, res.Flat)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, DefaultGroupName, res.Groups[0].Name)
	assert.Equal(t, res.Flat, res.Groups[0].Coords)
	assert.Equal(t, 3, res.Lines)
	assert.False(t, res.Is3D())
}

func TestParser_Groups(t *testing.T) {
	doc := "第1组\n0,0\n1,1\n第2组\n10,10\n11,11\n12,12,1\n"
	res, err := NewParser(zerolog.Nop()).Parse(doc)
	require.NoError(t, err)

	require.Len(t, res.Groups, 2)
	assert.Equal(t, "第1组", res.Groups[0].Name)
	assert.Equal(t, "第2组", res.Groups[1].Name)
	assert.Equal(t, 2, res.Groups[0].Len())
	assert.Equal(t, 3, res.Groups[1].Len())

	g, ok := res.Group("第2组")
	require.True(t, ok)
	assert.Equal(t, Coordinate{12, 12, 1}, g.Coords[2])

	// the flat sequence is every coordinate, independent of grouping
	assert.Len(t, res.Flat, 5)
	assert.True(t, res.Is3D())
}

func TestParser_EmptyGroupsFiltered(t *testing.T) {
	doc := "1,1\n第1组\n第2组\n2,2\n"
	res, err := NewParser(zerolog.Nop()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, res.Groups, 3)

	ne := res.NonEmptyGroups()
	require.Len(t, ne, 2)
	assert.Equal(t, DefaultGroupName, ne[0].Name)
	assert.Equal(t, "第2组", ne[1].Name)
}

func TestParser_RepeatedMarkerAppends(t *testing.T) {
	doc := "Group A\n1,1\nGroup B\n2,2\nGroup A\n3,3\n"
	res, err := NewParser(zerolog.Nop()).Parse(doc)
	require.NoError(t, err)
	require.Len(t, res.Groups, 2)
	a, _ := res.Group("Group A")
	assert.Equal(t, []Coordinate{{1, 1, 0}, {3, 3, 0}}, a.Coords)
}

func TestParser_Warnings(t *testing.T) {
	var buf bytes.Buffer
	p := NewParser(zerolog.New(&buf))
	doc := "# header\n1,2\nabc,def\n1e400,2,3\n\n// note\n3,4\r\n"
	res, err := p.Parse(doc)
	require.NoError(t, err)

	assert.Equal(t, []Coordinate{{1, 2, 0}, {3, 4, 0}}, res.Flat)
	require.Len(t, res.Warnings, 2)
	assert.Equal(t, 3, res.Warnings[0].Line)
	assert.Equal(t, KindUnparsed, res.Warnings[0].Reason)
	assert.Equal(t, "abc,def", res.Warnings[0].Text)
	assert.Equal(t, 4, res.Warnings[1].Line)
	assert.Equal(t, KindRejected, res.Warnings[1].Reason)
	assert.ErrorIs(t, res.Warnings[1].Err, ErrOutOfRange)

	assert.Contains(t, buf.String(), "skipping line")
	assert.Contains(t, res.Warnings[0].String(), "line 3")
}

func TestParser_NoData(t *testing.T) {
	res, err := NewParser(zerolog.Nop()).Parse("# nothing\nfoo\n第1组\n")
	require.ErrorIs(t, err, ErrNoData)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Len())
	assert.Len(t, res.Warnings, 1)
	assert.Empty(t, res.NonEmptyGroups())
}

func TestParser_Idempotent(t *testing.T) {
	doc := "第1组\n1,2\n3,4,5\nbad line\n第2组\n6;7\n8\t9\n"
	p := NewParser(zerolog.Nop())
	a, errA := p.Parse(doc)
	b, errB := p.Parse(doc)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestParser_ZeroValueDefaults(t *testing.T) {
	var p Parser
	res, err := p.Parse("9e9,1\n")
	require.NoError(t, err)
	assert.Equal(t, DefaultGroupName, res.Groups[0].Name)
}

func TestParser_CustomDefaultGroupAndLimit(t *testing.T) {
	p := &Parser{Limit: 10, DefaultGroup: "Default Group", Logger: zerolog.Nop()}
	res, err := p.Parse("1,1\n11,0\n")
	require.NoError(t, err)
	assert.Equal(t, "Default Group", res.Groups[0].Name)
	assert.Len(t, res.Flat, 1)
	assert.Len(t, res.Warnings, 1)
}

func TestParser_Progress(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 2500; i++ {
		fmt.Fprintf(&sb, "%d,%d\n", i, i)
	}
	var calls []int
	p := NewParser(zerolog.Nop())
	p.Progress = func(lines, valid int) { calls = append(calls, lines) }
	res, err := p.Parse(sb.String())
	require.NoError(t, err)
	assert.Equal(t, 2500, res.Len())
	assert.Equal(t, []int{1000, 2000}, calls)
}

func TestParser_LongLineSkipped(t *testing.T) {
	doc := "1,2\n" + strings.Repeat("x", 2<<20) + "\n3,4\n"
	res, err := NewParser(zerolog.Nop()).Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{{1, 2, 0}, {3, 4, 0}}, res.Flat)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 2, res.Warnings[0].Line)
	assert.Equal(t, KindUnparsed, res.Warnings[0].Reason)
	assert.ErrorIs(t, res.Warnings[0].Err, ErrLineTooLong)
	assert.Len(t, res.Warnings[0].Text, longLinePrefix)
	assert.Equal(t, 3, res.Lines)
}

func TestParser_LastLineWithoutNewline(t *testing.T) {
	res, err := NewParser(zerolog.Nop()).Parse("1,2\r\n3,4")
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{{1, 2, 0}, {3, 4, 0}}, res.Flat)
	assert.Equal(t, 2, res.Lines)
}
