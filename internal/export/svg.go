package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/ballsim/internal/sim"
	"github.com/san-kum/ballsim/internal/vec"
)

const background = "#0a0a0a"

// depthShade is how much a body at the far wall is darkened in 3-D.
const depthShade = 0.6

// SnapshotSVG draws the bodies of a snapshot as circles in their display
// colors. 3-D snapshots are projected onto the x-y plane, far bodies first
// and darkened by depth.
func SnapshotSVG[V vec.Vector[V]](snap sim.Snapshot[V], scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	width := snap.Extent.At(0) * scale
	height := snap.Extent.At(1) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	bodies := snap.Bodies
	depth := 0.0
	if snap.Extent.Dim() > 2 {
		depth = snap.Extent.At(2)
		bodies = append([]sim.BodyView[V](nil), bodies...)
		sort.SliceStable(bodies, func(i, j int) bool {
			return bodies[i].Position.At(2) > bodies[j].Position.At(2)
		})
	}

	for _, b := range bodies {
		c := b.Color
		if depth > 0 {
			t := b.Position.At(2) / depth
			c = c.BlendRgb(colorful.Color{}, t*depthShade)
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, b.Position.At(0)*scale, b.Position.At(1)*scale, b.Radius*scale, c.Hex()))
	}

	sb.WriteString(fmt.Sprintf(`<text x="8" y="20" fill="#ffffff" font-family="monospace" font-size="14">frame %d  bodies %d  steps %d  mode %s</text>
`, snap.Frame, snap.Stats.Bodies, snap.SimSteps, snap.Mode))
	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG draws one telemetry series as a polyline, x over sample index.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
