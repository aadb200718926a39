package monospace

import (
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"

	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/engine/text"
)

type measurer struct {
	em      dimen.Dimen
	context *uax11.Context
}

// New creates a measurer for monospace text. If em is zero, the font size
// given to Measure is taken as the cell width. context selects how ambiguous
// East Asian widths are resolved; if it is nil, a Latin context is used.
func New(em dimen.Dimen, context *uax11.Context) text.Measurer {
	m := &measurer{em: em, context: context}
	if context == nil {
		m.context = uax11.LatinContext
	}
	grapheme.SetupGraphemeClasses()
	return m
}

// Measure returns the width of word as the sum of its grapheme cells.
// Lines are one em high with the baseline a fifth of an em above the
// bottom.
func (m *measurer) Measure(word string, size dimen.Dimen) (w, h, baseline dimen.Dimen) {
	em := m.em
	if em == 0 {
		em = size
	}
	if em == 0 {
		tracer().Errorf("monospace measurer has neither em nor font size")
		return
	}
	if word == "" {
		return 0, em, em / 5
	}
	gstr := grapheme.StringFromString(word)
	for i := 0; i < gstr.Len(); i++ {
		cells := uax11.Width([]byte(gstr.Nth(i)), m.context)
		w += dimen.Dimen(cells) * em
	}
	return w, em, em / 5
}
