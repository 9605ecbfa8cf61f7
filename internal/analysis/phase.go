package analysis

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

type Point struct{ X, Y float64 }

// PhasePortrait holds a coordinate against its rate of change.
type PhasePortrait struct {
	Points []Point
}

// NewPhasePortrait pairs each sample with its central-difference velocity.
// Endpoints use one-sided differences.
func NewPhasePortrait(times, values []float64) *PhasePortrait {
	n := len(values)
	if n < 2 || len(times) != n {
		return nil
	}
	p := &PhasePortrait{Points: make([]Point, n)}
	for i := range values {
		lo, hi := i-1, i+1
		if lo < 0 {
			lo = 0
		}
		if hi >= n {
			hi = n - 1
		}
		dt := times[hi] - times[lo]
		v := 0.0
		if dt != 0 {
			v = (values[hi] - values[lo]) / dt
		}
		p.Points[i] = Point{X: values[i], Y: v}
	}
	return p
}

// Component extracts one axis of one tracked node from sampled positions.
func Component(positions [][]mgl64.Vec3, node, axis int) []float64 {
	out := make([]float64, 0, len(positions))
	for _, row := range positions {
		if node < len(row) {
			out = append(out, row[node][axis])
		}
	}
	return out
}

// Crossings returns the sample indices at which values rise through level.
func Crossings(values []float64, level float64) []int {
	var idx []int
	for i := 1; i < len(values); i++ {
		if values[i-1] < level && values[i] >= level {
			idx = append(idx, i)
		}
	}
	return idx
}

// ASCII draws the portrait into a width x height grid with axes where
// they are visible.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := p.Points[0].X, p.Points[0].X
	minY, maxY := p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if grid[row][col] == ' ' {
				grid[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if grid[row][col] == ' ' {
				grid[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
