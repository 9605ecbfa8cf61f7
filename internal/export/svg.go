// Package export renders bodies and sampled trajectories as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/softsim/internal/analysis"
	"github.com/san-kum/softsim/internal/dynamo"
	"github.com/san-kum/softsim/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

// BodySVG draws the body springs through cam. Bending springs are dashed;
// fixed nodes are marked.
func BodySVG(b *dynamo.Body, cam *viz.Camera, width, height int) string {
	var sb strings.Builder
	header(&sb, width, height)

	sb.WriteString(`<g stroke="#00ffff" stroke-width="1">` + "\n")
	for _, s := range b.Springs() {
		x1, y1, _, v1 := cam.Project(b.WorldPos(s.A), width, height)
		x2, y2, _, v2 := cam.Project(b.WorldPos(s.B), width, height)
		if !v1 && !v2 {
			continue
		}
		dash := ""
		if s.Kind == dynamo.Bending {
			dash = ` stroke-dasharray="2,2" stroke-opacity="0.5"`
		}
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d"%s/>`+"\n", x1, y1, x2, y2, dash)
	}
	sb.WriteString("</g>\n")

	sb.WriteString(`<g fill="#ff00ff">` + "\n")
	for i, n := range b.Nodes() {
		if !n.Fixed {
			continue
		}
		if x, y, _, ok := cam.Project(b.WorldPos(i), width, height); ok {
			fmt.Fprintf(&sb, `<circle cx="%d" cy="%d" r="3"/>`+"\n", x, y)
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// FittedBodySVG draws the body from the front, framed to fit.
func FittedBodySVG(b *dynamo.Body, width, height int) string {
	pts := make([]mgl64.Vec3, len(b.Nodes()))
	for i := range pts {
		pts[i] = b.WorldPos(i)
	}
	cam := viz.NewCamera()
	cam.Fit(pts)
	return BodySVG(b, cam, width, height)
}

// TrajectorySVG draws points as a polyline scaled into the view with a
// tenth of padding on each side.
func TrajectorySVG(points []analysis.Point, width, height int, stroke string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>` + "\n</svg>")
	return sb.String()
}
