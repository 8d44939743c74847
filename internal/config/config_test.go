package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coord2cad/internal/cadgen"
	"coord2cad/internal/coords"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestDefaults(t *testing.T) {
	c, err := FromViper(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, cadgen.Line, c.Primitive)
	assert.False(t, c.Annotate)
	assert.Equal(t, 5.0, c.TextHeight)
	assert.False(t, c.GroupMode)
	assert.True(t, c.Comments)
	assert.Equal(t, coords.DefaultLimit, c.Limit)
	assert.Equal(t, coords.DefaultEpsilon, c.Epsilon)
	assert.Equal(t, coords.DefaultGroupName, c.DefaultGroup)
	assert.True(t, c.AutoCopy)
	assert.True(t, c.Preview)
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.Equal(t, int64(10<<20), c.MaxInputBytes())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coord2cad.toml")
	content := `
[conversion]
primitive = "pline"
annotate = true
annotation_height = 2.5
group_mode = true

[parser]
coordinate_limit = 1e9
closure_epsilon = 0.01
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := newViper(t)
	require.NoError(t, Load(v, path))
	c, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, cadgen.Polyline, c.Primitive)
	assert.True(t, c.Annotate)
	assert.Equal(t, 2.5, c.TextHeight)
	assert.True(t, c.GroupMode)
	assert.Equal(t, 1e9, c.Limit)
	assert.Equal(t, 0.01, c.Epsilon)

	req := c.Request()
	assert.True(t, req.GroupMode)
	assert.Equal(t, cadgen.Polyline, req.Options.Primitive)
	assert.Equal(t, 0.01, req.Options.Epsilon)
	assert.NoError(t, req.Options.Validate())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	err := Load(newViper(t), filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadWithoutFileKeepsDefaults(t *testing.T) {
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	v := newViper(t)
	require.NoError(t, Load(v, ""))
	_, err := FromViper(v)
	assert.NoError(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("COORD2CAD_CONVERSION_PRIMITIVE", "point")
	c, err := FromViper(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, cadgen.Point, c.Primitive)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown primitive", KeyPrimitive, "circle"},
		{"non numeric height", KeyAnnotationHeight, "abc"},
		{"zero height", KeyAnnotationHeight, "0"},
		{"negative limit", KeyCoordinateLimit, -1.0},
		{"negative epsilon", KeyClosureEpsilon, -0.5},
		{"empty default group", KeyDefaultGroup, "  "},
		{"bad log level", KeyLogLevel, "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)
			_, err := FromViper(v)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseHeight(t *testing.T) {
	h, err := ParseHeight(" 3.5 ")
	require.NoError(t, err)
	assert.Equal(t, 3.5, h)

	for _, bad := range []string{"", "x", "-1", "0", "NaN", "Inf"} {
		_, err := ParseHeight(bad)
		assert.ErrorIs(t, err, ErrInvalid, bad)
	}
}
