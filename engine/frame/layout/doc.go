/*
Package layout drives line-box layout over a tree of content boxes.

Overview

Content reaches the layout engine as a tree of pre-measured boxes, each
classified by display mode, positioning scheme and float side. Layout
walks this tree top-down, creates a line context for every box which
starts a formatting context, and feeds leaf boxes into the lines of
these contexts. Results are fragments in an arena, one chain of
fragments per element.

Layout is a pure, synchronous computation. A reflow is a new call to
Layout with a fresh arena.

Invaluable:
https://developer.mozilla.org/en-US/docs/Web/CSS/Visual_formatting_model

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lineflow.frame'.
func tracer() tracing.Trace {
	return tracing.Select("lineflow.frame")
}
