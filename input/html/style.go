package html

import (
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/bidi"

	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/core/parameters"
	"github.com/npillmayer/lineflow/core/percent"
	"github.com/npillmayer/lineflow/engine/frame"
	"github.com/npillmayer/lineflow/engine/frame/layout"
)

// declarations parses the style attribute of an element. Malformed styles
// are ignored.
func (b *builder) declarations(n *html.Node) []*css.Declaration {
	s, ok := attr(n, "style")
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	if !strings.HasSuffix(strings.TrimSpace(s), ";") {
		s += ";" // otherwise the value of the last declaration gets lost
	}
	decls, err := parser.ParseDeclarations(s)
	if err != nil {
		tracer().Errorf("ignoring style %q of <%s>: %v", s, n.Data, err)
		return nil
	}
	return decls
}

func fontSize(decls []*css.Declaration, inherited dimen.Dimen) (dimen.Dimen, bool) {
	for _, d := range decls {
		if strings.ToLower(d.Property) == "font-size" {
			if fs, ok := length(d.Value, inherited, inherited); ok && fs > 0 {
				return fs, true
			}
		}
	}
	return 0, false
}

// applyStyle sets up box from style declarations. Lengths in em refer to
// size, percentages to the width of the container.
func (b *builder) applyStyle(box *layout.Box, decls []*css.Declaration, size, container dimen.Dimen) {
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		val := strings.ToLower(strings.TrimSpace(d.Value))
		switch prop {
		case "display":
			if mode, ok := displayModes[val]; ok {
				box.Mode = mode
			}
		case "float":
			if side, ok := floatSides[val]; ok {
				box.FloatSide = side
			}
		case "clear":
			if side, ok := floatSides[val]; ok {
				box.ClearSides = side
			}
		case "position":
			if pos, ok := positions[val]; ok {
				box.Pos = pos
			}
		case "width":
			box.Size.Width, _ = length(val, size, container)
		case "height":
			box.Size.Height, _ = length(val, size, 0)
		case "margin":
			edges(val, &box.Margin, size, container)
		case "padding":
			edges(val, &box.Padding, size, container)
		case "border-width":
			edges(val, &box.Border, size, container)
		case "border":
			for _, v := range strings.Fields(val) {
				if l, ok := length(v, size, 0); ok {
					box.Border = frame.Uniform(l)
					break
				}
			}
		case "direction":
			switch val {
			case "rtl":
				box.WithParam(parameters.P_TEXTDIRECTION, bidi.RightToLeft)
			case "ltr":
				box.WithParam(parameters.P_TEXTDIRECTION, bidi.LeftToRight)
			}
		case "vertical-align":
			if va, ok := alignments[val]; ok {
				box.WithParam(parameters.P_VALIGN, int(va))
			}
		case "line-height":
			if lh, ok := length(val, size, size); ok {
				box.WithParam(parameters.P_LINEHEIGHT, lh)
			}
		case "font-size":
			// see fontSize
		default:
			if side, e, ok := sideProperty(prop, box); ok {
				e[side], _ = length(val, size, container)
				continue
			}
			tracer().Debugf("style property %q not supported", prop)
		}
	}
}

var displayModes = map[string]frame.DisplayMode{
	"block":        frame.Block,
	"inline":       frame.Inline,
	"inline-block": frame.InlineBlock,
	"flow-root":    frame.BlockRoot,
	"none":         frame.DisplayNone,
}

var floatSides = map[string]frame.FloatMode{
	"none":  frame.FloatNone,
	"left":  frame.FloatLeft,
	"right": frame.FloatRight,
	"both":  frame.FloatBoth,
}

var positions = map[string]frame.PositionMode{
	"static":   frame.Static,
	"relative": frame.Relative,
	"absolute": frame.Absolute,
	"fixed":    frame.Fixed,
}

var alignments = map[string]frame.VerticalAlign{
	"baseline": frame.AlignBaseline,
	"top":      frame.AlignTop,
	"middle":   frame.AlignMiddle,
	"bottom":   frame.AlignBottom,
}

var sides = map[string]int{
	"top": frame.Top, "right": frame.Right, "bottom": frame.Bottom, "left": frame.Left,
}

// sideProperty resolves properties like margin-left or border-top-width to
// the edges of box they refer to.
func sideProperty(prop string, box *layout.Box) (int, *frame.Edges, bool) {
	parts := strings.Split(prop, "-")
	if len(parts) < 2 {
		return 0, nil, false
	}
	side, ok := sides[parts[1]]
	if !ok {
		return 0, nil, false
	}
	switch {
	case parts[0] == "margin" && len(parts) == 2:
		return side, &box.Margin, true
	case parts[0] == "padding" && len(parts) == 2:
		return side, &box.Padding, true
	case parts[0] == "border" && len(parts) == 3 && parts[2] == "width":
		return side, &box.Border, true
	}
	return 0, nil, false
}

// edges reads a shorthand of one to four lengths, clockwise from the top.
func edges(val string, e *frame.Edges, size, container dimen.Dimen) {
	var l []dimen.Dimen
	for _, v := range strings.Fields(val) {
		d, ok := length(v, size, container)
		if !ok {
			return
		}
		l = append(l, d)
	}
	switch len(l) {
	case 1:
		*e = frame.Uniform(l[0])
	case 2:
		*e = frame.Edges{l[0], l[1], l[0], l[1]}
	case 3:
		*e = frame.Edges{l[0], l[1], l[2], l[1]}
	case 4:
		*e = frame.Edges{l[0], l[1], l[2], l[3]}
	}
}

// length parses a CSS length. Unit-less numbers are pixels, em refers to
// size and percentages to ref. "auto" is zero.
func length(v string, size, ref dimen.Dimen) (dimen.Dimen, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "auto" {
		return 0, true
	}
	if strings.HasSuffix(v, "em") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "em"), 64)
		if err != nil {
			return 0, false
		}
		return dimen.Dimen(f * float64(size)), true
	}
	d, ispcnt, err := dimen.ParseDimen(v)
	switch {
	case err != nil: // fractional pixels
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		if err != nil {
			return 0, false
		}
		return dimen.FromPixels(f), true
	case ispcnt:
		if ref == 0 {
			return 0, false
		}
		return percent.FromInt(int(d)).Of(ref), true
	case v[len(v)-1] >= '0' && v[len(v)-1] <= '9':
		return d * dimen.PX, true
	}
	return d, true
}
