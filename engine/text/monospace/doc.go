/*
Package monospace measures text set in a monospace font.

Every grapheme occupies one or two cells of the em-width, following the
East Asian Width property of Unicode (UAX#11). This is handy for terminal
output and for tests, where widths should be easy to predict.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lineflow.text'.
func tracer() tracing.Trace {
	return tracing.Select("lineflow.text")
}
