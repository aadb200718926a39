package framedebug

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/lineflow/core"
	"github.com/npillmayer/lineflow/engine/frame"
	"github.com/npillmayer/lineflow/engine/frame/layout"
)

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname  string
	BoxTmpl   *template.Template
	EdgeTmpl  *template.Template
	ChainTmpl *template.Template
}

// ToGraphViz creates a graphical representation of the fragments of a
// layout result. Edges lead from a fragment to the fragments placed into
// it; dashed edges link the fragments of an element broken across lines.
// It produces a DOT file format suitable as input for Graphviz, given a
// Writer.
func ToGraphViz(r *layout.Result, w io.Writer) error {
	if r == nil || r.Arena == nil {
		return core.Error(core.EMISSING, "no layout result to draw")
	}
	header, err := template.New("fragments").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	funcs := template.FuncMap{
		"shortstring": shortText,
		"istext":      isText,
		"label":       label,
	}
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.BoxTmpl = template.Must(template.New("box").Funcs(funcs).Parse(boxTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	gparams.ChainTmpl = template.Must(template.New("chain").Parse(chainTmpl))
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	kids := children(r.Arena)
	var walk func(id frame.FragmentID, depth int) error
	walk = func(id frame.FragmentID, depth int) error {
		if depth > r.Arena.Len() {
			return core.Error(core.EINVARIANT, "cycle in fragment tree at %d", id)
		}
		f := r.Arena.At(id)
		if err := gparams.BoxTmpl.Execute(w, &fbox{F: f, Name: nodeName(id)}); err != nil {
			return err
		}
		for _, ch := range kids[id] {
			if err := walk(ch, depth+1); err != nil {
				return err
			}
			e := fedge{N1: nodeName(id), N2: nodeName(ch)}
			if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
				return err
			}
		}
		return nil
	}
	if err = walk(r.Root, 0); err != nil {
		return err
	}
	for _, rd := range r.Elements {
		ids := rd.Fragments()
		for i := 1; i < len(ids); i++ {
			e := fedge{N1: nodeName(ids[i-1]), N2: nodeName(ids[i])}
			if err = gparams.ChainTmpl.Execute(w, e); err != nil {
				return err
			}
		}
	}
	_, err = w.Write([]byte("}\n"))
	return err
}

// Dump writes an indented listing of the fragment tree of a layout result.
func Dump(r *layout.Result, w io.Writer) error {
	if r == nil || r.Arena == nil {
		return core.Error(core.EMISSING, "no layout result to dump")
	}
	kids := children(r.Arena)
	var err error
	var dump func(id frame.FragmentID, depth int)
	dump = func(id frame.FragmentID, depth int) {
		if err != nil {
			return
		}
		f := r.Arena.At(id)
		next := ""
		if f.NextInElement != frame.NoFragment {
			next = fmt.Sprintf(" → #%d", f.NextInElement)
		}
		_, err = fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), f, next)
		for _, ch := range kids[id] {
			dump(ch, depth+1)
		}
	}
	dump(r.Root, 0)
	return err
}

// children collects the fragments placed into each fragment, in order of
// allocation.
func children(arena *frame.Arena) map[frame.FragmentID][]frame.FragmentID {
	kids := make(map[frame.FragmentID][]frame.FragmentID)
	for i := 0; i < arena.Len(); i++ {
		f := arena.At(frame.FragmentID(i))
		if f.Parent != frame.NoFragment && f.Parent != f.ID {
			kids[f.Parent] = append(kids[f.Parent], f.ID)
		}
	}
	return kids
}

func nodeName(id frame.FragmentID) string {
	return fmt.Sprintf("node%05d", id)
}

// Helper structs
type fbox struct {
	F    *frame.Fragment
	Name string
}

type fedge struct {
	N1, N2 string
}

func shortText(box *fbox) string {
	txt := ""
	if box.F.Element != nil {
		txt = box.F.Element.Name
	}
	s := fmt.Sprintf("\"%s \\\"", "T")
	if r := []rune(txt); len(r) > 10 {
		s += string(r[:10]) + "…\\\"\""
	} else {
		s += txt + "\\\"\""
	}
	s = strings.Replace(s, "\n", `\\n`, -1)
	s = strings.Replace(s, "\t", `\\t`, -1)
	s = strings.Replace(s, " ", "␣", -1)
	return s
}

func label(f *frame.Fragment) string {
	name := "anon"
	if f.Element != nil {
		name = f.Element.Name
	}
	return fmt.Sprintf("\"%s %s\\n%s×%s @ %s,%s\"", f.Display.Symbol(), name,
		f.Width, f.Height, f.ParentOffsetLeft, f.ParentOffsetTop)
}

// isText is true for fragments of ordinary inline leaves, i.e. words.
func isText(f *frame.Fragment) bool {
	return f.IsOrdinaryInline() && f.FirstChild == frame.NoFragment
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`
const boxTmpl = `{{ if istext .F }}
{{ .Name }}	[ label={{ shortstring . }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else if .F.IsFloated }}
{{ .Name }}	[ label={{ label .F }} shape=box style=filled fillcolor=lightgoldenrod1 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .F }} shape=box style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1] ;
`

const chainTmpl = `{{ .N1 }} -> {{ .N2 }} [style=dashed color=grey50 constraint=false] ;
`
