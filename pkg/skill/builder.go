package skill

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LiixTT/AMS-IO-Agent/pkg/process"
	"github.com/LiixTT/AMS-IO-Agent/pkg/ring"
)

// Script is an emitted command sequence, one command per line.
type Script struct {
	Node  process.Node
	Lines []string
}

// Commands returns the number of lines that are not comments.
func (s *Script) Commands() int {
	n := 0
	for _, l := range s.Lines {
		if !strings.HasPrefix(l, ";") {
			n++
		}
	}
	return n
}

// Bytes returns the script text with a trailing newline.
func (s *Script) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = s.WriteTo(&buf)
	return buf.Bytes()
}

func (s *Script) String() string { return string(s.Bytes()) }

// WriteTo implements io.WriterTo.
func (s *Script) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, l := range s.Lines {
		n, err := io.WriteString(w, l+"\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// builder accumulates commands.
type builder struct {
	lines []string
}

func (b *builder) add(format string, args ...any) {
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
}

func (b *builder) comment(text string) { b.add("; %s", text) }

func (b *builder) instance(lib string, c ring.Component) {
	b.add(`dbCreateParamInstByMasterName(cv %q %q "layout" %q %s %q)`,
		lib, c.Device, c.Name, pt(c.Position), c.Orientation.String())
}

// path draws a two-point wire. style is omitted when empty.
func (b *builder) path(layer string, from, to ring.Point, width float64, style string) {
	if style == "" {
		b.add(`dbCreatePath(cv list(%q "drawing") list(%s %s) %s)`, layer, pt(from), pt(to), num(width))
		return
	}
	b.add(`dbCreatePath(cv list(%q "drawing") list(%s %s) %s %q)`, layer, pt(from), pt(to), num(width), style)
}

func (b *builder) via(v process.Via, at ring.Point, o ring.Orientation) {
	b.add("tech = techGetTechFile(cv)")
	b.add(`viaParams = list(list("cutRows" %d) list("cutColumns" %d))`, v.Rows, v.Cols)
	b.add(`viaDefId = techFindViaDefByName(tech %q)`, v.Def)
	b.add(`newVia = dbCreateVia(cv viaDefId %s %q viaParams)`, pt(at), o.String())
}

func (b *builder) label(layer string, at ring.Point, text, just, orient string, size float64) {
	b.add(`dbCreateLabel(cv list(%q "pin") %s %q %q %q "roman" %s)`, layer, pt(at), text, just, orient, num(size))
}

func (b *builder) rect(layer string, p1, p2 ring.Point) {
	b.add(`dbCreateRect(cv list(%q "drawing") list(%s %s))`, layer, pt(p1), pt(p2))
}

func (b *builder) polygon(layer string, pts []ring.Point) {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = pt(p)
	}
	b.add(`dbCreatePolygon(cv list(%q "drawing") list(%s))`, layer, strings.Join(parts, " "))
}

func pt(p ring.Point) string { return "list(" + num(p.X) + " " + num(p.Y) + ")" }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
