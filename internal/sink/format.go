// Package sink writes fastener results to CSV files, XLSX workbooks, PDF
// reports and a SQLite run history.
package sink

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ResultHeader is the column order of every tabular result output
var ResultHeader = []string{
	"fastener_id",
	"fastener_px",
	"fastener_py",
	"fastener_pm",
	"fastener_pm_x",
	"fastener_pm_y",
	"fastener_p_horizontal",
	"fastener_p_vertical",
	"fastener_resultant_load",
}

// maxDecimals caps the decimals of fixed-precision output
const maxDecimals = 15

// FormatValue renders v with a fixed number of decimals, or with the shortest
// round-trip representation when precision is negative.
func FormatValue(v float64, precision int) string {
	if precision < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(int32(min(precision, maxDecimals)))
}

// RoundValue rounds v half away from zero; negative precision keeps v
func RoundValue(v float64, precision int) float64 {
	if precision < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(int32(min(precision, maxDecimals))).InexactFloat64()
}
