/*
Package sfnt measures text with OpenType and TrueType fonts.

Faces are created lazily, one per font size, and kept for the lifetime of
a Measurer. Glyph advances include kerning but no shaping beyond that.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sfnt

import (
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
)

// tracer traces with key 'lineflow.text'.
func tracer() tracing.Trace {
	return tracing.Select("lineflow.text")
}

// Measurer measures words set in a single font. It is safe for concurrent
// use.
type Measurer struct {
	font  *opentype.Font
	mx    sync.Mutex
	faces map[dimen.Dimen]font.Face
}

// New parses font data in OpenType or TrueType format.
func New(data []byte) (*Measurer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	return &Measurer{font: f, faces: make(map[dimen.Dimen]font.Face)}, nil
}

// GoRegular returns a measurer for the Go Regular font, which is compiled
// into the binary.
func GoRegular() *Measurer {
	m, err := New(goregular.TTF)
	if err != nil {
		panic(err) // bundled font is broken
	}
	return m
}

// Face returns a face of the font for a given size, where one pixel
// equals one point.
func (m *Measurer) Face(size dimen.Dimen) font.Face {
	m.mx.Lock()
	defer m.mx.Unlock()
	if face, ok := m.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    float64(size) / float64(dimen.PX),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		tracer().Errorf("cannot create face of size %s: %v", size, err)
		return nil
	}
	tracer().Debugf("created font face of size %s", size)
	m.faces[size] = face
	return face
}

// Measure returns the advance width of word, the line height of the font
// and the descent as the distance of the baseline from the bottom.
func (m *Measurer) Measure(word string, size dimen.Dimen) (w, h, baseline dimen.Dimen) {
	if size <= 0 {
		return
	}
	face := m.Face(size)
	if face == nil {
		return
	}
	metrics := face.Metrics()
	w = fromFixed(font.MeasureString(face, word))
	return w, fromFixed(metrics.Height), fromFixed(metrics.Descent)
}

func fromFixed(x fixed.Int26_6) dimen.Dimen {
	return dimen.Dimen(int64(x) * int64(dimen.PX) / 64)
}
