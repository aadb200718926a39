/*
Package flow implements line contexts, the state machines of line-box layout.

A line context collects fragments on the current line, tracks the pen
position and the horizontal bounds of the line, and resolves each line's
fragments to final positions when the line completes. Contexts come in
three variants:

■ Block contexts are flow roots. They own their pen, bounds, direction and
font, and they keep the floats of their formatting context.

■ Inline contexts lay out the content of an ordinary inline element. They
delegate absolute geometry to their host block and push line height,
baseline and pen advance up to their parent context when a line completes.
If a line breaks inside an inline element, the element continues with a
new fragment on the next line.

■ Inline-block contexts act as inline contexts while their width is
unknown and as flow roots once it has been resolved.

A layout driver walks content, calls AddToLine/AdvancePen for every
fragment, probes for room with GetLineSpace and ends lines with
CompleteLine. All calls happen on one goroutine per layout pass; contexts
are discarded after the pass.

Coordinates of fragments are relative to the content origin of the fragment
they have been placed into, i.e. the fragment a context is producing.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package flow

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lineflow.frame'.
func tracer() tracing.Trace {
	return tracing.Select("lineflow.frame")
}
