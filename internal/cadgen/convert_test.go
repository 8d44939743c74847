package cadgen

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coord2cad/internal/coords"
)

const twoGroups = "第1组\n0,0\n10,0\n第2组\n0,0\n5,5\n0,0\n"

func TestConvert_Flat(t *testing.T) {
	c := NewConverter(zerolog.Nop())
	out, err := c.Convert(twoGroups, Request{Options: opts(Polyline)})
	require.NoError(t, err)
	assert.False(t, out.Grouped)
	assert.Equal(t, 5, out.Summary.Valid)
	assert.Equal(t, 2, out.Summary.Groups)
	assert.Equal(t, 1, out.Script.Count(DirCommand))
	assert.Len(t, out.Script.Filter(DirVertex), 5)
}

func TestConvert_GroupMode(t *testing.T) {
	c := NewConverter(zerolog.Nop())
	out, err := c.Convert(twoGroups, Request{Options: opts(Polyline), GroupMode: true})
	require.NoError(t, err)
	assert.True(t, out.Grouped)

	require.Len(t, out.Result.Groups, 2)
	assert.Equal(t, "第1组", out.Result.Groups[0].Name)
	assert.Equal(t, 2, out.Result.Groups[0].Len())
	assert.Equal(t, "第2组", out.Result.Groups[1].Name)
	assert.Equal(t, 3, out.Result.Groups[1].Len())

	assert.Equal(t, 2, out.Script.Count(DirCommand))
	assert.Equal(t, 1, out.Script.Count(DirClose), "only the second group is a ring")
	assert.Equal(t, 2, out.Script.Count(DirEnd))
}

func TestConvert_GroupModeWithoutMarkers(t *testing.T) {
	c := NewConverter(zerolog.Nop())
	out, err := c.Convert("1,1\n2,2\n", Request{Options: opts(Line), GroupMode: true})
	require.NoError(t, err)
	assert.Contains(t, out.Script.String(), "# "+coords.DefaultGroupName)
}

func TestConvert_Selected(t *testing.T) {
	c := NewConverter(zerolog.Nop())
	out, err := c.Convert(twoGroups, Request{Options: opts(Point), GroupMode: true, Selected: []string{"第2组"}})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Script.Count(DirCommand))
	assert.NotContains(t, out.Script.String(), "第1组")

	_, err = c.Convert(twoGroups, Request{Options: opts(Point), GroupMode: true, Selected: []string{"第9组"}})
	assert.ErrorIs(t, err, ErrNoGroups)
	assert.True(t, IsEmpty(err))
}

func TestConvert_NoData(t *testing.T) {
	c := NewConverter(zerolog.Nop())
	out, err := c.Convert("abc,def\n# only comments\n", Request{Options: opts(Line)})
	require.ErrorIs(t, err, coords.ErrNoData)
	assert.True(t, IsEmpty(err))
	require.NotNil(t, out)
	assert.True(t, out.Script.Empty())
	assert.Equal(t, 1, out.Summary.Skipped)
}

func TestConvert_InvalidOptionsBeforeParsing(t *testing.T) {
	c := NewConverter(zerolog.Nop())
	o := opts(Point)
	o.Annotate = true
	o.TextHeight = -1
	out, err := c.Convert("1,1", Request{Options: o})
	assert.ErrorIs(t, err, ErrInvalidOptions)
	assert.False(t, IsEmpty(err))
	assert.Nil(t, out)
}

func TestConvert_LimitAndWarnings(t *testing.T) {
	c := NewConverter(zerolog.Nop())
	out, err := c.Convert("1,1\n1e400,2,3\nabc,def\n500,0\n", Request{Options: opts(Point), Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Summary.Valid)
	assert.Equal(t, 3, out.Summary.Skipped)
	assert.Equal(t, "parsed 4 lines, 1 valid coordinates, 3 skipped", out.Summary.String())
}

func TestSummaryString(t *testing.T) {
	s := Summary{Lines: 10, Valid: 8, Skipped: 1, Groups: 2, Is3D: true}
	assert.Equal(t, "parsed 10 lines, 8 valid coordinates, 1 skipped, 2 groups (3D)", s.String())
}
