/*
Package text prepares text for line-box layout.

Layout works on pre-measured boxes. This package splits text into the
units lines may break between, and defines the service which measures
them. Implementations of the measurement service live in sub-packages:
monospace for character-cell output and sfnt for OpenType fonts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lineflow.text'.
func tracer() tracing.Trace {
	return tracing.Select("lineflow.text")
}
