package measure

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/ggchart"
)

// ErrInvalidSize is returned by NewShaped for a non-positive font size.
var ErrInvalidSize = errors.New("measure: font size must be positive")

// Shaped measures labels by shaping them with HarfBuzz. It is safe for
// concurrent use: the parsed font is shared and shapers are pooled.
type Shaped struct {
	font *font.Font
	size float64
	lang language.Language

	shapers sync.Pool
}

// NewShaped parses a TrueType or OpenType font and returns a measurer at
// the given pixel size.
func NewShaped(ttf []byte, size float64) (*Shaped, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	face, err := font.ParseTTF(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("measure: parse font: %w", err)
	}
	s := &Shaped{
		font: face.Font,
		size: size,
		lang: language.NewLanguage("en"),
	}
	s.shapers.New = func() any { return &shaping.HarfbuzzShaper{} }
	return s, nil
}

// Size returns the pixel size labels are measured at.
func (s *Shaped) Size() float64 { return s.size }

// Measure returns the shaped advance and line height of text.
func (s *Shaped) Measure(text string) ggchart.Rect {
	if text == "" {
		return ggchart.Rect{}
	}
	out := s.shape(text)
	w := fixedToFloat(out.Advance)
	if w < 0 {
		w = -w
	}
	h := fixedToFloat(out.LineBounds.Ascent - out.LineBounds.Descent)
	return ggchart.XYWH(0, 0, w, h)
}

func (s *Shaped) shape(text string) shaping.Output {
	runes := []rune(text)
	in := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: direction(text),
		Face:      font.NewFace(s.font),
		Size:      fixed.Int26_6(s.size * 64),
		Script:    script(runes),
		Language:  s.lang,
	}
	hb := s.shapers.Get().(*shaping.HarfbuzzShaper)
	defer s.shapers.Put(hb)
	return hb.Shape(in)
}

// direction is right-to-left when the first bidi run of text is.
func direction(text string) di.Direction {
	var p bidi.Paragraph
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return di.DirectionLTR
	}
	o, err := p.Order()
	if err != nil || o.NumRuns() == 0 {
		return di.DirectionLTR
	}
	if r := o.Run(0); r.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func script(runes []rune) language.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
