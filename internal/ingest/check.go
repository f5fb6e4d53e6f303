package ingest

import (
	"errors"

	"github.com/alexiusacademia/gofastener/internal/fastener"
)

// Report is the outcome of checking a joint file and a loads file together
type Report struct {
	Fasteners []fastener.Fastener
	Loads     []fastener.Load

	Warnings   []Warning
	JointError error
	LoadsError error
}

// OK reports whether both files can be solved
func (r *Report) OK() bool {
	return r.JointError == nil && r.LoadsError == nil
}

// Cells returns every missing cell found in both files
func (r *Report) Cells() []CellIssue {
	var cells []CellIssue
	for _, err := range []error{r.JointError, r.LoadsError} {
		var missing *MissingDataError
		if errors.As(err, &missing) {
			cells = append(cells, missing.Cells...)
		}
	}
	return cells
}

// Check reads both input files. Errors of one file do not stop the other
// file from being checked.
func Check(jointPath, loadsPath string) *Report {
	r := &Report{}

	var warnings []Warning
	r.Fasteners, warnings, r.JointError = ReadJoint(jointPath)
	r.Warnings = append(r.Warnings, warnings...)

	r.Loads, warnings, r.LoadsError = ReadLoads(loadsPath)
	r.Warnings = append(r.Warnings, warnings...)

	return r
}
