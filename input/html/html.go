package html

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/core/dimen"
	"github.com/npillmayer/lineflow/core/parameters"
	"github.com/npillmayer/lineflow/engine/frame"
	"github.com/npillmayer/lineflow/engine/frame/layout"
	"github.com/npillmayer/lineflow/engine/text"
)

// DefaultFontSize is used if Build is called without a font size.
const DefaultFontSize = 12 * dimen.PX

type builder struct {
	measurer  text.Measurer
	container dimen.Dimen    // reference for percentages at the root
	counts    map[string]int // per tag, for naming
	lastWord  *layout.Box    // may receive a space from the next text node
	lastSize  dimen.Dimen
}

// Option configures Build.
type Option func(*builder)

// ContainerWidth sets the width percentages of the root element refer to.
// Without it, percentages on the root are ignored.
func ContainerWidth(w dimen.Dimen) Option {
	return func(b *builder) {
		b.container = w
	}
}

// Build parses an HTML document from r and translates the first element
// matching selector into a content-box tree. An empty selector selects the
// body. Text is measured by m at the given font size, which style
// attributes may change for sub-trees.
//
// Elements are named by their id attribute, or by their tag and a running
// number (p1, p2, …). Words are named by their text.
func Build(r io.Reader, selector string, m text.Measurer, fontSize dimen.Dimen,
	opts ...Option) (*layout.Box, error) {
	//
	if m == nil {
		return nil, core.Error(core.EINVALID, "building content requires a text measurer")
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	if selector == "" {
		selector = "body"
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "invalid selector %q", selector)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse HTML input")
	}
	n := sel.MatchFirst(doc)
	if n == nil {
		return nil, core.Error(core.EMISSING, "no element matches %q", selector)
	}
	b := &builder{measurer: m, counts: make(map[string]int)}
	for _, opt := range opts {
		opt(b)
	}
	root := b.element(n, fontSize, b.container)
	if root == nil {
		return nil, core.Error(core.EMISSING, "element %q is not displayed", selector)
	}
	tracer().Infof("built content tree for %q", selector)
	return root, nil
}

var skipped = map[string]bool{
	"head": true, "script": true, "style": true, "title": true, "meta": true,
	"link": true, "template": true, "noscript": true,
}

var blockTags = map[string]bool{
	"html": true, "body": true, "div": true, "p": true, "section": true,
	"article": true, "header": true, "footer": true, "nav": true, "main": true,
	"aside": true, "blockquote": true, "ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"pre": true, "figure": true, "hr": true,
}

func displayOf(tag string) frame.DisplayMode {
	if blockTags[tag] {
		return frame.Block
	}
	return frame.Inline
}

// element translates an element node and its sub-tree. It returns nil for
// elements which do not generate boxes.
func (b *builder) element(n *html.Node, size, container dimen.Dimen) *layout.Box {
	tag := strings.ToLower(n.Data)
	if skipped[tag] {
		return nil
	}
	if tag == "br" {
		b.lastWord = nil
		return layout.Break()
	}
	box := layout.NewBox(b.name(n, tag), displayOf(tag))
	decls := b.declarations(n)
	if fs, ok := fontSize(decls, size); ok {
		size = fs
		box.WithParam(parameters.P_FONTSIZE, size)
	}
	b.applyStyle(box, decls, size, container)
	if box.Mode == frame.DisplayNone {
		return nil
	}
	if tag == "img" {
		b.image(n, box, size, container)
		return box
	}
	inner := container
	if box.Size.Width > 0 {
		inner = box.Size.Width
	} else if box.Mode.IsBlockLevel() {
		inner = dimen.Max(0, container-horizontal(box))
	}
	if !box.Mode.IsOrdinaryInline() {
		b.lastWord = nil
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		switch ch.Type {
		case html.ElementNode:
			if k := b.element(ch, size, inner); k != nil {
				box.Add(k)
			}
		case html.TextNode:
			box.Add(b.words(ch.Data, size)...)
		}
	}
	if !box.Mode.IsOrdinaryInline() {
		b.lastWord = nil
	}
	return box
}

func (b *builder) name(n *html.Node, tag string) string {
	for _, a := range n.Attr {
		if a.Key == "id" && a.Val != "" {
			return a.Val
		}
	}
	b.counts[tag]++
	return fmt.Sprintf("%s%d", tag, b.counts[tag])
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// image makes box a replaced element, sized by style or by its width and
// height attributes.
func (b *builder) image(n *html.Node, box *layout.Box, size, container dimen.Dimen) {
	if box.Mode.IsOrdinaryInline() {
		box.Mode = frame.InlineBlock
	} else if box.Mode.IsBlockLevel() {
		box.Mode = frame.BlockRoot
	}
	if v, ok := attr(n, "width"); ok && box.Size.Width == 0 {
		box.Size.Width, _ = length(v, size, container)
	}
	if v, ok := attr(n, "height"); ok && box.Size.Height == 0 {
		box.Size.Height, _ = length(v, size, 0)
	}
	b.lastWord = nil
}

// words splits a text node into measured word boxes.
func (b *builder) words(s string, size dimen.Dimen) []*layout.Box {
	s = norm.NFC.String(s)
	if s == "" {
		return nil
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(r) && b.lastWord != nil &&
		!strings.HasSuffix(b.lastWord.Tag, " ") {
		b.lastWord.Tag += " "
		b.measure(b.lastWord, b.lastSize)
	}
	var boxes []*layout.Box
	for _, w := range text.Words(s) {
		box := layout.Word(w, 0, 0, 0)
		b.measure(box, size)
		boxes = append(boxes, box)
		b.lastWord, b.lastSize = box, size
	}
	return boxes
}

func (b *builder) measure(box *layout.Box, size dimen.Dimen) {
	w, h, baseline := b.measurer.Measure(box.Tag, size)
	box.Size = layout.Extent{Width: w, Height: h, Baseline: baseline}
}

func horizontal(box *layout.Box) dimen.Dimen {
	return box.Margin.Horizontal() + box.Border.Horizontal() + box.Padding.Horizontal()
}
