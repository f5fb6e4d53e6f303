package sink

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/alexiusacademia/gofastener/internal/fastener"
)

// ReportMeta is printed in the heading of a PDF report
type ReportMeta struct {
	Title     string
	JointFile string
	LoadsFile string
	Date      time.Time
}

// WritePDFReport renders an A4 calculation report of the solution
func WritePDFReport(w io.Writer, sol *fastener.Solution, meta ReportMeta) error {
	if meta.Title == "" {
		meta.Title = "Fastener Joint Load Distribution"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(meta.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, meta.Title)
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	if meta.JointFile != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Joint file: %s", meta.JointFile))
		pdf.Ln(5)
	}
	if meta.LoadsFile != "" {
		pdf.Cell(0, 5, fmt.Sprintf("Loads file: %s", meta.LoadsFile))
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(9)

	// Joint summary
	g := sol.Geometry
	net := sol.Loads.Net
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Joint")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	summary := [][2]string{
		{"Fasteners", fmt.Sprintf("%d", len(g.Fasteners))},
		{"Area formula", g.Mode.String()},
		{"Centroid (x, y)", fmt.Sprintf("%.4f, %.4f", g.Centroid.X, g.Centroid.Y)},
		{"Polar moment (sum r^2)", fmt.Sprintf("%.4f", g.PolarMoment)},
		{"Net load Px, Py", fmt.Sprintf("%.4f, %.4f", net.Px, net.Py)},
		{"Net moment Mz at centroid", fmt.Sprintf("%.4f", net.Mz)},
	}
	for _, line := range summary {
		pdf.CellFormat(60, 6, line[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, line[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Result table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Fastener loads")
	pdf.Ln(8)

	headings := []string{"ID", "Px", "Py", "Pm", "Pm,x", "Pm,y", "P,hor", "P,ver", "Resultant"}
	widths := []float64{22, 19, 19, 19, 19, 19, 21, 21, 26}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for i, h := range headings {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	critical, _ := sol.Critical()
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetFillColor(255, 235, 205)
	for i, r := range sol.Results {
		fill := i == critical
		pdf.CellFormat(widths[0], 6, r.ID, "1", 0, "L", fill, 0, "")
		for j, v := range resultValues(r) {
			pdf.CellFormat(widths[j+1], 6, fmt.Sprintf("%.3f", v), "1", 0, "R", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if critical >= 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		c := sol.Results[critical]
		pdf.Cell(0, 6, fmt.Sprintf("Critical fastener: %s, resultant load %.3f", c.ID, c.Resultant))
		pdf.Ln(6)
	}

	return pdf.Output(w)
}

// SavePDFReport writes the report to a file
func SavePDFReport(path string, sol *fastener.Solution, meta ReportMeta) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}

	if err := WritePDFReport(file, sol, meta); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return file.Close()
}
