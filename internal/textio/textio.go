// Package textio reads coordinate documents from disk, resolving their text
// encoding, and writes generated scripts back out.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// Encoding names the detected source encoding.
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF8BOM Encoding = "utf-8-bom"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
	GB18030 Encoding = "gb18030"
)

var ErrEmptyScript = errors.New("textio: nothing to write")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Document is a decoded input file.
type Document struct {
	Path     string
	Text     string
	Encoding Encoding
	Size     int64
	// Large is set when Size exceeded the caller's threshold.
	Large bool
}

// Decode converts raw bytes to text. BOMs are honoured first, then valid
// UTF-8 is passed through and anything else is read as GB18030.
func Decode(b []byte) (string, Encoding, error) {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return string(b[len(bomUTF8):]), UTF8BOM, nil
	case bytes.HasPrefix(b, bomUTF16LE):
		s, err := decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), b)
		return s, UTF16LE, err
	case bytes.HasPrefix(b, bomUTF16BE):
		s, err := decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), b)
		return s, UTF16BE, err
	case utf8.Valid(b):
		return string(b), UTF8, nil
	}
	s, err := decodeWith(simplifiedchinese.GB18030, b)
	return s, GB18030, err
}

func decodeWith(enc encoding.Encoding, b []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("textio: decode: %w", err)
	}
	return string(out), nil
}

// ReadFile reads and decodes path. Files larger than warnAbove bytes are
// still read but flagged as Large; a non-positive warnAbove disables the
// check.
func ReadFile(path string, warnAbove int64, logger zerolog.Logger) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}
	text, enc, err := Decode(b)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	doc := Document{Path: path, Text: text, Encoding: enc, Size: int64(len(b))}
	if warnAbove > 0 && doc.Size > warnAbove {
		doc.Large = true
		logger.Warn().Str("path", path).Int64("bytes", doc.Size).Msg("large input file, conversion may take a while")
	}
	logger.Debug().Str("path", path).Str("encoding", string(enc)).Int64("bytes", doc.Size).Msg("read input")
	return doc, nil
}

// WriteScript writes script as UTF-8, replacing any existing file.
func WriteScript(path, script string) error {
	if script == "" {
		return ErrEmptyScript
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return fmt.Errorf("textio: write %s: %w", path, err)
	}
	return nil
}
