package textio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

const sample = "第1组\n447677.9778, 2491585.3947\n"

func TestDecode(t *testing.T) {
	gb, err := simplifiedchinese.GB18030.NewEncoder().String(sample)
	require.NoError(t, err)
	le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(sample)
	require.NoError(t, err)
	be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String(sample)
	require.NoError(t, err)

	tests := []struct {
		name string
		in   []byte
		enc  Encoding
	}{
		{"utf-8", []byte(sample), UTF8},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, sample...), UTF8BOM},
		{"gb18030", []byte(gb), GB18030},
		{"utf-16le", []byte(le), UTF16LE},
		{"utf-16be", []byte(be), UTF16BE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := Decode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.enc, enc)
			assert.Equal(t, sample, text)
		})
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pts.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	doc, err := ReadFile(path, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, sample, doc.Text)
	assert.Equal(t, UTF8, doc.Encoding)
	assert.False(t, doc.Large)

	doc, err = ReadFile(path, 4, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, doc.Large)

	_, err = ReadFile(filepath.Join(dir, "missing.txt"), 0, zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.scr")
	require.NoError(t, WriteScript(path, "pline\n1,2\n"))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pline\n1,2\n", string(b))

	assert.ErrorIs(t, WriteScript(path, ""), ErrEmptyScript)
}
