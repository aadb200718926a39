/*
Package frame holds the geometric results of line-box layout.

Layout is the process of placing boxes within larger boxes. Every piece
of content which lands on a physical line produces a Fragment: a
rectangle following the CSS box model, carrying margins, borders and
paddings, a baseline and its offset relative to the box it has been
placed into. An element which wraps across lines produces more than one
fragment; these are chained together in the element's RenderData.

Fragments live in an Arena and reference each other by FragmentID. A
layout pass owns its arena; a reflow starts from an empty one.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lineflow.frame'.
func tracer() tracing.Trace {
	return tracing.Select("lineflow.frame")
}
