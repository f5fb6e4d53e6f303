package fastener

import "math"

// AnalyzeGeometry computes the fastener areas, the joint centroid and the
// distance of every fastener to the centroid.
func AnalyzeGeometry(fasteners []Fastener, mode AreaMode) (*JointGeometry, error) {
	if err := validateFasteners(fasteners); err != nil {
		return nil, err
	}

	g := &JointGeometry{
		Mode:      mode,
		Fasteners: make([]FastenerGeometry, len(fasteners)),
	}

	// Area and first moments of area
	var sumAreaX, sumAreaY float64
	for i, f := range fasteners {
		fg := FastenerGeometry{Fastener: f}
		fg.Area = fastenerArea(f.Diameter, mode)
		fg.AreaX = fg.Area * f.X
		fg.AreaY = fg.Area * f.Y
		for _, err := range []error{
			checkDerived(f.ID, "area", fg.Area),
			checkDerived(f.ID, "area_x", fg.AreaX),
			checkDerived(f.ID, "area_y", fg.AreaY),
		} {
			if err != nil {
				return nil, err
			}
		}

		g.TotalArea += fg.Area
		sumAreaX += fg.AreaX
		sumAreaY += fg.AreaY
		g.Fasteners[i] = fg
	}

	// Center of resistance
	g.Centroid = Point{
		X: sumAreaX / g.TotalArea,
		Y: sumAreaY / g.TotalArea,
	}
	if err := checkDerived("", "centroid_x", g.Centroid.X); err != nil {
		return nil, err
	}
	if err := checkDerived("", "centroid_y", g.Centroid.Y); err != nil {
		return nil, err
	}

	// Radii from the centroid and the polar moment of the pattern
	for i := range g.Fasteners {
		fg := &g.Fasteners[i]
		fg.Rx = g.Centroid.X - fg.X
		fg.Ry = g.Centroid.Y - fg.Y
		fg.R = math.Hypot(fg.Rx, fg.Ry)
		fg.R2 = fg.R * fg.R
		if err := checkDerived(fg.ID, "r2", fg.R2); err != nil {
			return nil, err
		}
		g.PolarMoment += fg.R2
	}
	if err := checkDerived("", "polar_moment", g.PolarMoment); err != nil {
		return nil, err
	}

	return g, nil
}

func fastenerArea(d float64, mode AreaMode) float64 {
	if mode == AreaPhysical {
		return math.Pi * d * d / 4
	}
	return math.Pi * d
}

func validateFasteners(fasteners []Fastener) error {
	if len(fasteners) == 0 {
		return &EmptyJointError{}
	}

	seen := make(map[string]struct{}, len(fasteners))
	for _, f := range fasteners {
		switch {
		case !isFinite(f.X):
			return &InvalidGeometryError{FastenerID: f.ID, Field: "x", Value: f.X}
		case !isFinite(f.Y):
			return &InvalidGeometryError{FastenerID: f.ID, Field: "y", Value: f.Y}
		case !isFinite(f.Diameter) || f.Diameter <= 0:
			return &InvalidGeometryError{FastenerID: f.ID, Field: "diameter", Value: f.Diameter}
		}

		if _, ok := seen[f.ID]; ok {
			return &DuplicateFastenerError{ID: f.ID}
		}
		seen[f.ID] = struct{}{}
	}
	return nil
}

// checkDerived rejects a derived quantity that overflowed float64
func checkDerived(id, field string, v float64) error {
	if !isFinite(v) {
		return &InvalidGeometryError{FastenerID: id, Field: field, Value: v}
	}
	return nil
}

// extent returns the largest absolute coordinate of the pattern
func (g *JointGeometry) extent() float64 {
	var e float64
	for _, f := range g.Fasteners {
		e = math.Max(e, math.Max(math.Abs(f.X), math.Abs(f.Y)))
	}
	return e
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
