/*
Package html translates HTML documents into content-box trees for layout.

Only the structure of the document and inline style attributes are taken
into account; there is no style sheet cascade. Elements are classified by
their tag, the style attribute may override display mode, floats,
positioning, sizes and decoration. Text nodes are normalized to NFC, split
into words and measured by a text.Measurer.

	root, err := html.Build(strings.NewReader(doc), "body", monospace.New(10*dimen.PX, nil), 0)
	result, err := layout.Layout(root, 400*dimen.PX, nil)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lineflow.input'.
func tracer() tracing.Trace {
	return tracing.Select("lineflow.input")
}
