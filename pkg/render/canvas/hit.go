package canvas

import (
	"math"

	"github.com/matzehuels/graphsketch/pkg/graph"
	"github.com/matzehuels/graphsketch/pkg/interact"
)

// edgeTolerance is how far from a drawn edge, in cells, a press still
// selects it.
const edgeTolerance = 0.75

// HitTest reports what is under p in the last drawn view. Nodes win over
// edges; among several candidates the closest one is chosen, ties going
// to the higher id (drawn last, so on top).
func (c *Canvas) HitTest(p graph.Point) interact.Target {
	best, bestDist := graph.NodeID(-1), math.Inf(1)
	for _, n := range c.nodes {
		if d := dist(p, n.Pos); d <= c.radius && d <= bestDist {
			best, bestDist = n.ID, d
		}
	}
	if best >= 0 {
		return interact.NodeTarget(best)
	}

	bestEdge, bestDist := graph.EdgeID(-1), math.Inf(1)
	for _, s := range c.segs {
		if d := segmentDist(p, s.from, s.to); d <= edgeTolerance && d <= bestDist {
			bestEdge, bestDist = s.id, d
		}
	}
	if bestEdge >= 0 {
		return interact.EdgeTarget(bestEdge)
	}
	return interact.Canvas()
}

func dist(a, b graph.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// segmentDist is the distance from p to the segment a-b.
func segmentDist(p, a, b graph.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return dist(p, a)
	}
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / l2
	t = max(0, min(1, t))
	return dist(p, graph.Point{X: a.X + t*dx, Y: a.Y + t*dy})
}

func round(f float64) int { return int(math.Round(f)) }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// slopeGlyph picks a line character for a run of dx by dy cells (y down).
func slopeGlyph(dx, dy int) rune {
	switch {
	case abs(dy)*2 <= abs(dx):
		return '─'
	case abs(dx)*2 <= abs(dy):
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// arrowGlyph picks one of eight arrows for direction dx, dy (y down).
func arrowGlyph(dx, dy int) rune {
	angle := math.Atan2(float64(dy), float64(dx))
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	i := int(math.Round(angle/(math.Pi/4))+8) % 8
	return arrows[i]
}
