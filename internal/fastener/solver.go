package fastener

import "math"

// polarTolerance scales the pattern extent below which the root of the polar
// moment is treated as zero. A single fastener can land one ulp away from its
// own centroid, which must not be read as a moment arm.
const polarTolerance = 1e-10

// Option configures Analyze
type Option func(*options)

type options struct {
	mode AreaMode
}

// WithAreaMode selects the area formula used for the centroid
func WithAreaMode(mode AreaMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// Solve distributes the loads over the fasteners using the elastic method and
// returns one result per fastener, in input order.
func Solve(fasteners []Fastener, loads []Load) ([]Result, error) {
	sol, err := Analyze(fasteners, loads)
	if err != nil {
		return nil, err
	}
	return sol.Results, nil
}

// Analyze runs the full pipeline and keeps the intermediate tables
func Analyze(fasteners []Fastener, loads []Load, opts ...Option) (*Solution, error) {
	o := options{mode: AreaLiteral}
	for _, opt := range opts {
		opt(&o)
	}

	geometry, err := AnalyzeGeometry(fasteners, o.mode)
	if err != nil {
		return nil, err
	}

	translation, err := TranslateLoads(loads, geometry.Centroid)
	if err != nil {
		return nil, err
	}

	results, err := Distribute(geometry, translation.Net)
	if err != nil {
		return nil, err
	}

	return &Solution{
		Geometry: geometry,
		Loads:    translation,
		Results:  results,
	}, nil
}

// Distribute computes the direct and moment-induced shear of every fastener
// for the net load acting at the centroid.
func Distribute(g *JointGeometry, net NetLoad) ([]Result, error) {
	n := len(g.Fasteners)
	if n == 0 {
		return nil, &EmptyJointError{}
	}

	if !isFinite(g.PolarMoment) {
		return nil, &InvalidGeometryError{Field: "polar_moment", Value: g.PolarMoment}
	}
	extent := g.extent()
	if n == 1 || math.Sqrt(g.PolarMoment) <= polarTolerance*(1+extent) {
		return nil, &DegeneratePolarInertiaError{Fasteners: n, PolarMoment: g.PolarMoment}
	}

	results := make([]Result, n)
	for i, f := range g.Fasteners {
		r := Result{ID: f.ID}

		// Uniform split of the net force
		r.Px = net.Px / float64(n)
		r.Py = net.Py / float64(n)

		// Moment share proportional to the distance from the centroid.
		// A fastener on the centroid has no arm and takes no moment.
		if f.R != 0 {
			r.Pm = net.Mz * f.R / g.PolarMoment
			r.PmX = r.Pm * f.Ry / f.R
			r.PmY = r.Pm * (-1) * f.Rx / f.R
		}

		r.PHorizontal = r.Px + r.PmX
		r.PVertical = r.Py + r.PmY
		r.Resultant = math.Sqrt(r.PHorizontal*r.PHorizontal + r.PVertical*r.PVertical)

		results[i] = r
	}

	return results, nil
}
