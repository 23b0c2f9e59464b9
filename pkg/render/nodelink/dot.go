package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphsketch/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Scale converts canvas units to points. Default 1.
	Scale float64

	// NodeRadius is the node circle radius in canvas units. Default 12.
	NodeRadius float64
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.NodeRadius <= 0 {
		o.NodeRadius = 12
	}
	return o
}

// ToDOT converts a snapshot to Graphviz DOT.
//
// Nodes are pinned to their canvas positions (neato with pos="x,y!"), with
// the y axis flipped since canvas y grows downwards. Directed graphs become
// a digraph. Weighted graphs label each edge with its weight. When a pair
// of anti-parallel edges exists, splines are curved so both stay visible.
func ToDOT(s *graph.Snapshot, opts Options) string {
	opts = opts.withDefaults()

	kind, arrow := "graph", "--"
	if s.Directed() {
		kind, arrow = "digraph", "->"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s G {\n", kind)
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	if hasAntiParallel(s) {
		buf.WriteString("  splines=curved;\n")
	}
	diameter := 2 * opts.NodeRadius * opts.Scale / 72
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=white, fixedsize=true, width=%.3f, fontsize=12];\n", diameter)
	buf.WriteString("  edge [fontsize=11];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes() {
		fmt.Fprintf(&buf, "  %d [label=\"%d\", pos=\"%s,%s!\"];\n",
			n.ID, n.ID, num(n.Pos.X*opts.Scale), num(-n.Pos.Y*opts.Scale))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges() {
		attrs := []string{fmt.Sprintf("id=\"e%d\"", e.ID)}
		if s.Weighted() {
			attrs = append(attrs, fmt.Sprintf("label=%q", num(e.W)))
		}
		fmt.Fprintf(&buf, "  %d %s %d [%s];\n", e.U, arrow, e.V, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func hasAntiParallel(s *graph.Snapshot) bool {
	for _, p := range s.Index().Pairs() {
		if s.HasReverse(p.U, p.V) {
			return true
		}
	}
	return false
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := renderDOT(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG. A scale of 2.0 doubles the
// resolution for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	if scale > 0 && scale != 1 {
		dot = strings.Replace(dot, "{\n", fmt.Sprintf("{\n  dpi=%s;\n", num(72*scale)), 1)
	}
	return renderDOT(dot, graphviz.PNG)
}

func renderDOT(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
