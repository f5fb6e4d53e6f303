package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
)

func readCSV(path, source string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", source, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s file %s: %w", source, path, err)
	}
	return records, nil
}
