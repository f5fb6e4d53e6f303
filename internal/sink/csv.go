package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gofastener/internal/fastener"
)

// WriteCSV writes one row per fastener under ResultHeader
func WriteCSV(w io.Writer, results []fastener.Result, precision int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultHeader); err != nil {
		return err
	}

	for _, r := range results {
		record := []string{r.ID}
		for _, v := range resultValues(r) {
			record = append(record, FormatValue(v, precision))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the results to a file, creating its directory if needed
func SaveCSV(path string, results []fastener.Result, precision int) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create results file %s: %w", path, err)
	}

	if err := WriteCSV(file, results, precision); err != nil {
		file.Close()
		return fmt.Errorf("failed to write results file %s: %w", path, err)
	}
	return file.Close()
}

// resultValues returns the numeric columns of r in ResultHeader order
func resultValues(r fastener.Result) []float64 {
	return []float64{
		r.Px,
		r.Py,
		r.Pm,
		r.PmX,
		r.PmY,
		r.PHorizontal,
		r.PVertical,
		r.Resultant,
	}
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
