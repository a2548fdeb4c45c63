package componentbuilder

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/foomo/componentbuilder/vo"
)

type printer struct {
	w     io.Writer
	indnt int
}

func (p *printer) indent(inc int) {
	p.indnt += inc
}

func (p *printer) println(values ...interface{}) {
	if p.w == nil {
		return
	}
	fmt.Fprintln(p.w, strings.Repeat("	", p.indnt)+fmt.Sprint(values...))
}

// Print an element tree built with the default create func, one line per
// element or text, nested elements are indented with tabs
func Print(w io.Writer, element interface{}) {
	p := &printer{w: w}
	p.print(element)
}

func (p *printer) print(node interface{}) {
	switch n := node.(type) {
	case nil:
		p.println("<nil>")
	case string:
		p.println(strconv.Quote(n))
	case *vo.Element:
		if n == nil {
			p.println("<nil>")
			return
		}
		tag := "<" + n.Type + propsString(n.Props)
		if n.Terminal() {
			p.println(tag + "/>")
			return
		}
		p.println(tag + ">")
		p.indent(1)
		for _, c := range n.Children {
			p.print(c)
		}
		p.indent(-1)
		p.println("</" + n.Type + ">")
	default:
		p.println(fmt.Sprintf("%v", n))
	}
}

// key first, then all other props sorted by name
func propsString(props vo.Props) string {
	names := make([]string, 0, len(props))
	for name := range props {
		if name != vo.PropKey {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := props[vo.PropKey]; ok {
		names = append([]string{vo.PropKey}, names...)
	}
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, " "+name+"="+strconv.Quote(fmt.Sprint(props[name])))
	}
	return strings.Join(parts, "")
}
