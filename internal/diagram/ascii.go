package diagram

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/alexiusacademia/gofastener/internal/fastener"
)

// Point represents a 2D coordinate in joint units
type Point struct {
	X float64
	Y float64
}

// FastenerMark is a fastener with its solved load components
type FastenerMark struct {
	ID          string
	X, Y        float64
	Diameter    float64
	PHorizontal float64
	PVertical   float64
	Resultant   float64
}

// LoadMark is an applied load at its application point
type LoadMark struct {
	ID     string
	X, Y   float64
	Px, Py float64
	Mz     float64
}

// JointDiagramData holds everything needed to draw a solved joint
type JointDiagramData struct {
	Fasteners []FastenerMark
	Loads     []LoadMark
	Centroid  Point
	Critical  int // Index of the most loaded fastener, -1 if unknown
}

// FromSolution builds the diagram data of a solved joint
func FromSolution(sol *fastener.Solution) JointDiagramData {
	data := JointDiagramData{
		Centroid: Point{X: sol.Geometry.Centroid.X, Y: sol.Geometry.Centroid.Y},
	}
	data.Critical, _ = sol.Critical()

	for i, fg := range sol.Geometry.Fasteners {
		mark := FastenerMark{ID: fg.ID, X: fg.X, Y: fg.Y, Diameter: fg.Diameter}
		if i < len(sol.Results) {
			r := sol.Results[i]
			mark.PHorizontal = r.PHorizontal
			mark.PVertical = r.PVertical
			mark.Resultant = r.Resultant
		}
		data.Fasteners = append(data.Fasteners, mark)
	}
	for _, tl := range sol.Loads.Loads {
		data.Loads = append(data.Loads, LoadMark{ID: tl.ID, X: tl.X, Y: tl.Y, Px: tl.Px, Py: tl.Py, Mz: tl.Mz})
	}
	return data
}

const markSymbols = "123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// markSymbol returns the plan symbol of the i-th fastener
func markSymbol(i int) byte {
	if i < len(markSymbols) {
		return markSymbols[i]
	}
	return '#'
}

// DrawJointPlan creates an ASCII plan of the fastener pattern. Fasteners are
// numbered in input order, the centroid is '+' and load points are '*'.
func DrawJointPlan(data JointDiagramData) string {
	const (
		widthChars  = 48
		heightChars = 16
	)

	// Bounding box of everything shown
	minX, maxX := data.Centroid.X, data.Centroid.X
	minY, maxY := data.Centroid.Y, data.Centroid.Y
	extend := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, f := range data.Fasteners {
		extend(f.X, f.Y)
	}
	for _, l := range data.Loads {
		extend(l.X, l.Y)
	}

	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	grid := make([][]byte, heightChars+1)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", widthChars+1))
	}
	place := func(x, y float64, symbol byte) {
		col := int(math.Round((x - minX) / spanX * widthChars))
		row := heightChars - int(math.Round((y-minY)/spanY*heightChars))
		grid[row][col] = symbol
	}

	for _, l := range data.Loads {
		place(l.X, l.Y, '*')
	}
	place(data.Centroid.X, data.Centroid.Y, '+')
	for i, f := range data.Fasteners {
		place(f.X, f.Y, markSymbol(i))
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("  JOINT PLAN\n")
	sb.WriteString("  ──────────\n")
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars+1)))
	for _, row := range grid {
		sb.WriteString(fmt.Sprintf("  │%s│\n", row))
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars+1)))
	sb.WriteString(fmt.Sprintf("  x: %.2f … %.2f   y: %.2f … %.2f\n", minX, maxX, minY, maxY))

	// Legend
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString(fmt.Sprintf("  + = Centroid (%.3f, %.3f)\n", data.Centroid.X, data.Centroid.Y))
	if len(data.Loads) > 0 {
		sb.WriteString("  * = Load application point\n")
	}
	for i, f := range data.Fasteners {
		marker := ""
		if i == data.Critical {
			marker = "  ← CRITICAL"
		}
		sb.WriteString(fmt.Sprintf("  %c = %s%s\n", markSymbol(i), f.ID, marker))
	}

	return sb.String()
}

// DrawSummaryBox creates a box around a title and lines of text
func DrawSummaryBox(title string, lines []string) string {
	width := utf8.RuneCountInString(title)
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	pad := func(s string) string {
		return s + strings.Repeat(" ", width-utf8.RuneCountInString(s))
	}
	border := strings.Repeat("═", width+4)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title)))
	if len(lines) > 0 {
		sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
		for _, line := range lines {
			sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line)))
		}
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))
	return sb.String()
}
