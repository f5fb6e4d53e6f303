package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	fastenerColor = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	criticalColor = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	vectorColor   = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	loadColor     = color.RGBA{R: 0, G: 128, B: 0, A: 255}
)

// ExportJointDiagram exports the fastener pattern with the resultant load
// vector of every fastener to an image file (png, svg or pdf)
func ExportJointDiagram(data JointDiagramData, filename string) error {
	if len(data.Fasteners) == 0 {
		return fmt.Errorf("joint diagram needs at least one fastener")
	}

	p := plot.New()
	p.Title.Text = "Fastener Loads"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	// Pattern size sets the vector scale
	minX, maxX := data.Fasteners[0].X, data.Fasteners[0].X
	minY, maxY := data.Fasteners[0].Y, data.Fasteners[0].Y
	var maxResultant float64
	for _, f := range data.Fasteners {
		minX, maxX = math.Min(minX, f.X), math.Max(maxX, f.X)
		minY, maxY = math.Min(minY, f.Y), math.Max(maxY, f.Y)
		maxResultant = math.Max(maxResultant, f.Resultant)
	}
	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	scale := 0.0
	if maxResultant > 0 {
		scale = 0.3 * span / maxResultant
	}

	// Resultant load vectors
	for i, f := range data.Fasteners {
		if f.Resultant == 0 {
			continue
		}
		vec, err := plotter.NewLine(plotter.XYs{
			{X: f.X, Y: f.Y},
			{X: f.X + f.PHorizontal*scale, Y: f.Y + f.PVertical*scale},
		})
		if err != nil {
			return err
		}
		vec.LineStyle.Width = vg.Points(2)
		vec.LineStyle.Color = vectorColor
		if i == data.Critical {
			vec.LineStyle.Color = criticalColor
		}
		p.Add(vec)
	}

	// Fasteners
	pts := make(plotter.XYs, len(data.Fasteners))
	ids := make([]string, len(data.Fasteners))
	for i, f := range data.Fasteners {
		pts[i] = plotter.XY{X: f.X, Y: f.Y}
		ids[i] = fmt.Sprintf("%s (%.1f)", f.ID, f.Resultant)
	}
	fasteners, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	fasteners.GlyphStyle.Color = fastenerColor
	fasteners.GlyphStyle.Radius = vg.Points(6)
	fasteners.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(fasteners)
	p.Legend.Add("fastener", fasteners)

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: ids})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: vg.Points(8), Y: vg.Points(4)}
	p.Add(labels)

	// Centroid
	centroid, err := plotter.NewScatter(plotter.XYs{{X: data.Centroid.X, Y: data.Centroid.Y}})
	if err != nil {
		return err
	}
	centroid.GlyphStyle.Color = color.Black
	centroid.GlyphStyle.Radius = vg.Points(7)
	centroid.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(centroid)
	p.Legend.Add("centroid", centroid)

	// Applied loads
	if len(data.Loads) > 0 {
		loadPts := make(plotter.XYs, len(data.Loads))
		for i, l := range data.Loads {
			loadPts[i] = plotter.XY{X: l.X, Y: l.Y}
		}
		loads, err := plotter.NewScatter(loadPts)
		if err != nil {
			return err
		}
		loads.GlyphStyle.Color = loadColor
		loads.GlyphStyle.Radius = vg.Points(5)
		loads.GlyphStyle.Shape = draw.TriangleGlyph{}
		p.Add(loads)
		p.Legend.Add("load", loads)
	}

	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
