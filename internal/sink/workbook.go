package sink

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alexiusacademia/gofastener/internal/fastener"
)

// Sheet names of the result workbook
const (
	SheetResults = "results"
	SheetJoint   = "joint"
	SheetLoads   = "loads"
)

var (
	jointSheetHeader = []string{
		"fastener_id", "fastener_x_loc", "fastener_y_loc", "fastener_dia",
		"fastener_area", "fastener_area_x_loc", "fastener_area_y_loc",
		"centroid_x", "centroid_y",
		"fastener_rx", "fastener_ry", "fastener_r", "fastener_r2",
	}
	loadsSheetHeader = []string{
		"load_id", "load_x_loc", "load_y_loc", "load_px", "load_py", "load_mz",
		"loads_rx", "loads_ry", "load_px_c", "load_py_c", "load_mz_c",
	}
)

// SaveWorkbook writes the results and both intermediate tables to an XLSX file
func SaveWorkbook(path string, sol *fastener.Solution, precision int) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetResults); err != nil {
		return err
	}
	for _, name := range []string{SheetJoint, SheetLoads} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	round := func(v float64) float64 { return RoundValue(v, precision) }

	// Results
	rows := [][]interface{}{toRow(ResultHeader)}
	for _, r := range sol.Results {
		row := []interface{}{r.ID}
		for _, v := range resultValues(r) {
			row = append(row, round(v))
		}
		rows = append(rows, row)
	}
	if err := writeRows(f, SheetResults, rows); err != nil {
		return err
	}

	// Derived geometry
	g := sol.Geometry
	rows = [][]interface{}{toRow(jointSheetHeader)}
	for _, fg := range g.Fasteners {
		rows = append(rows, []interface{}{
			fg.ID, fg.X, fg.Y, fg.Diameter,
			round(fg.Area), round(fg.AreaX), round(fg.AreaY),
			round(g.Centroid.X), round(g.Centroid.Y),
			round(fg.Rx), round(fg.Ry), round(fg.R), round(fg.R2),
		})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"area_mode", g.Mode.String()},
		[]interface{}{"polar_moment", round(g.PolarMoment)},
	)
	if err := writeRows(f, SheetJoint, rows); err != nil {
		return err
	}

	// Translated loads and their sum
	rows = [][]interface{}{toRow(loadsSheetHeader)}
	for _, tl := range sol.Loads.Loads {
		rows = append(rows, []interface{}{
			tl.ID, tl.X, tl.Y, tl.Px, tl.Py, tl.Mz,
			round(tl.Rx), round(tl.Ry), round(tl.PxC), round(tl.PyC), round(tl.MzC),
		})
	}
	net := sol.Loads.Net
	rows = append(rows, []interface{}{"net", "", "", "", "", "", "", "", round(net.Px), round(net.Py), round(net.Mz)})
	if err := writeRows(f, SheetLoads, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func toRow(header []string) []interface{} {
	row := make([]interface{}, len(header))
	for i, h := range header {
		row[i] = h
	}
	return row
}
