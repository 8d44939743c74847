package cadgen

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"coord2cad/internal/coords"
)

// ErrNoGroups is returned in group mode when no selected group has data.
var ErrNoGroups = errors.New("cadgen: no non-empty groups")

// IsEmpty reports whether err is one of the "no data" outcomes, as opposed
// to a configuration or read failure.
func IsEmpty(err error) bool {
	return errors.Is(err, coords.ErrNoData) || errors.Is(err, ErrNoGroups)
}

// Request is one conversion job.
type Request struct {
	Options Options
	// GroupMode renders one block per non-empty group instead of the flat
	// sequence.
	GroupMode bool
	// Selected restricts group mode to these group names when non-empty.
	Selected []string

	Limit        float64
	DefaultGroup string
	Progress     func(lines, valid int)
}

// Summary aggregates what a conversion saw.
type Summary struct {
	Lines   int
	Valid   int
	Skipped int
	Groups  int
	Is3D    bool
}

func (s Summary) String() string {
	msg := fmt.Sprintf("parsed %d lines, %d valid coordinates, %d skipped", s.Lines, s.Valid, s.Skipped)
	if s.Groups > 1 {
		msg += fmt.Sprintf(", %d groups", s.Groups)
	}
	if s.Is3D {
		msg += " (3D)"
	}
	return msg
}

// Output is the result of a successful conversion.
type Output struct {
	Script  Script
	Result  *coords.Result
	Grouped bool
	Summary Summary
}

// Converter runs parse and generation for a document.
type Converter struct {
	logger zerolog.Logger
}

// NewConverter returns a Converter logging to logger.
func NewConverter(logger zerolog.Logger) *Converter {
	return &Converter{logger: logger}
}

// Convert parses doc and renders it. Options are validated before the
// document is touched. On an empty outcome the returned Output still
// carries the parse result and summary so callers can report warnings.
func (c *Converter) Convert(doc string, req Request) (*Output, error) {
	if err := req.Options.Validate(); err != nil {
		return nil, err
	}
	p := &coords.Parser{
		Limit:        req.Limit,
		DefaultGroup: req.DefaultGroup,
		Logger:       c.logger,
		Progress:     req.Progress,
	}
	res, err := p.Parse(doc)
	out := &Output{Result: res, Script: NoDataScript()}
	if res != nil {
		out.Summary = Summary{
			Lines:   res.Lines,
			Valid:   res.Len(),
			Skipped: len(res.Warnings),
			Groups:  len(res.NonEmptyGroups()),
			Is3D:    res.Is3D(),
		}
	}
	if err != nil {
		return out, err
	}

	gen := NewGenerator(req.Options)
	if !req.GroupMode {
		out.Script = gen.Generate(res.Flat)
		c.logger.Info().Str("primitive", req.Options.Primitive.String()).Int("points", res.Len()).Int("skipped", out.Summary.Skipped).Msg("converted")
		return out, nil
	}

	groups := res.NonEmptyGroups()
	if len(req.Selected) > 0 {
		for _, name := range req.Selected {
			if g, ok := res.Group(name); !ok || len(g.Coords) == 0 {
				c.logger.Warn().Str("group", name).Msg("selected group has no coordinates")
			}
		}
		out.Script = gen.GenerateSelected(groups, req.Selected)
	} else {
		out.Script = gen.GenerateGrouped(groups)
	}
	out.Grouped = true
	if out.Script.Empty() {
		return out, ErrNoGroups
	}
	c.logger.Info().Str("primitive", req.Options.Primitive.String()).Int("groups", len(groups)).Int("points", res.Len()).Msg("converted groups")
	return out, nil
}
