package fastener

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func squareJoint() []Fastener {
	return []Fastener{
		{ID: "F1", X: 0, Y: 0, Diameter: 5},
		{ID: "F2", X: 10, Y: 0, Diameter: 5},
		{ID: "F3", X: 10, Y: 10, Diameter: 5},
		{ID: "F4", X: 0, Y: 10, Diameter: 5},
	}
}

func TestSolve_SquareDirectForceAtCentroid(t *testing.T) {
	results, err := Solve(squareJoint(), []Load{{ID: "L1", X: 5, Y: 5, Px: 100}})
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("F%d", i+1), r.ID)
		assert.InDelta(t, 25.0, r.Px, eps)
		assert.InDelta(t, 0.0, r.Py, eps)
		assert.InDelta(t, 0.0, r.Pm, eps)
		assert.InDelta(t, 25.0, r.PHorizontal, eps)
		assert.InDelta(t, 0.0, r.PVertical, eps)
		assert.InDelta(t, 25.0, r.Resultant, eps)
	}
}

func TestSolve_SquarePureMoment(t *testing.T) {
	results, err := Solve(squareJoint(), []Load{{ID: "L1", X: 5, Y: 5, Mz: 1000}})
	require.NoError(t, err)

	// r = √50 for every fastener, ΣR² = 200
	expectedPm := 1000 * math.Sqrt(50) / 200
	for _, r := range results {
		assert.InDelta(t, 0.0, r.Px, eps)
		assert.InDelta(t, 0.0, r.Py, eps)
		assert.InDelta(t, expectedPm, r.Pm, eps)
		assert.InDelta(t, expectedPm, r.Resultant, eps)
	}

	// Corner at the origin: rx = ry = 5
	assert.InDelta(t, 25.0, results[0].PmX, eps)
	assert.InDelta(t, -25.0, results[0].PmY, eps)
	// Opposite corner: rx = ry = -5
	assert.InDelta(t, -25.0, results[2].PmX, eps)
	assert.InDelta(t, 25.0, results[2].PmY, eps)
}

func TestSolve_EccentricLoad(t *testing.T) {
	// Py = 1000 applied 10 to the right of the centroid gives Mz_c = 10000
	sol, err := Analyze(squareJoint(), []Load{{ID: "L1", X: 15, Y: 5, Py: 1000}})
	require.NoError(t, err)

	assert.InDelta(t, 10000.0, sol.Loads.Net.Mz, 1e-6)

	expected := []struct {
		ph, pv, resultant float64
	}{
		{250, 0, 250},
		{250, 500, math.Sqrt(250*250 + 500*500)},
		{-250, 500, math.Sqrt(250*250 + 500*500)},
		{-250, 0, 250},
	}
	for i, want := range expected {
		r := sol.Results[i]
		assert.InDelta(t, 250.0, r.Py, eps, r.ID)
		assert.InDelta(t, want.ph, r.PHorizontal, 1e-6, r.ID)
		assert.InDelta(t, want.pv, r.PVertical, 1e-6, r.ID)
		assert.InDelta(t, want.resultant, r.Resultant, 1e-6, r.ID)
	}
}

func TestSolution_Critical(t *testing.T) {
	// The added Px pushes the right-hand bottom fastener over its neighbour
	sol, err := Analyze(squareJoint(), []Load{{ID: "L1", X: 15, Y: 5, Px: 100, Py: 1000}})
	require.NoError(t, err)

	idx, critical := sol.Critical()
	assert.Equal(t, 1, idx)
	assert.Equal(t, "F2", critical.ID)
	assert.InDelta(t, math.Sqrt(275*275+500*500), critical.Resultant, 1e-6)
}

func TestSolve_FastenerAtCentroidTakesNoMoment(t *testing.T) {
	fasteners := []Fastener{
		{ID: "A", X: -4, Y: 0, Diameter: 3},
		{ID: "B", X: 0, Y: 0, Diameter: 3},
		{ID: "C", X: 4, Y: 0, Diameter: 3},
	}

	sol, err := Analyze(fasteners, []Load{{ID: "M", Mz: 320}})
	require.NoError(t, err)
	require.Equal(t, 0.0, sol.Geometry.Fasteners[1].R)

	middle := sol.Results[1]
	assert.False(t, math.IsNaN(middle.PmX))
	assert.False(t, math.IsNaN(middle.PmY))
	assert.Equal(t, 0.0, middle.Pm)
	assert.Equal(t, 0.0, middle.PmX)
	assert.Equal(t, 0.0, middle.PmY)
	assert.Equal(t, 0.0, middle.Resultant)

	// ΣR² = 32, pm = 320·4/32
	assert.InDelta(t, 40.0, sol.Results[0].Pm, eps)
	assert.InDelta(t, 40.0, sol.Results[2].Pm, eps)
	assert.InDelta(t, 40.0, sol.Results[0].PmY, eps)
	assert.InDelta(t, -40.0, sol.Results[2].PmY, eps)
}

func TestSolve_SingleFastenerIsDegenerate(t *testing.T) {
	_, err := Solve([]Fastener{{ID: "F1", X: 3.3, Y: 7.1, Diameter: 4.8}}, []Load{{ID: "L1", Px: 10}})

	var degenerate *DegeneratePolarInertiaError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, 1, degenerate.Fasteners)
}

func TestSolve_CoincidentFastenersAreDegenerate(t *testing.T) {
	fasteners := []Fastener{
		{ID: "F1", X: 1.7, Y: 2.9, Diameter: 4},
		{ID: "F2", X: 1.7, Y: 2.9, Diameter: 6},
	}
	_, err := Solve(fasteners, nil)

	var degenerate *DegeneratePolarInertiaError
	assert.ErrorAs(t, err, &degenerate)
}

func TestSolve_OverflowingGeometry(t *testing.T) {
	tests := []struct {
		name      string
		fasteners []Fastener
		id        string
		field     string
	}{
		{
			name:      "radius squared",
			fasteners: []Fastener{{ID: "F1", Diameter: 5}, {ID: "F2", X: 1e160, Diameter: 5}},
			id:        "F1",
			field:     "r2",
		},
		{
			name:      "area",
			fasteners: []Fastener{{ID: "F1", Diameter: 1e308}, {ID: "F2", X: 10, Diameter: 5}},
			id:        "F1",
			field:     "area",
		},
		{
			name:      "first moment",
			fasteners: []Fastener{{ID: "F1", Diameter: 5}, {ID: "F2", Y: 1e300, Diameter: 1e10}},
			id:        "F2",
			field:     "area_y",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(tt.fasteners, []Load{{ID: "L1", Mz: 100}})

			var degenerate *DegeneratePolarInertiaError
			assert.False(t, errors.As(err, &degenerate))

			var invalid *InvalidGeometryError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.id, invalid.FastenerID)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Contains(t, err.Error(), "out of range")
		})
	}
}

func TestSolve_LargeButFiniteGeometry(t *testing.T) {
	fasteners := []Fastener{{ID: "F1", Diameter: 5}, {ID: "F2", X: 1e150, Diameter: 5}}

	results, err := Solve(fasteners, []Load{{ID: "L1", X: 5e149, Mz: 1e150}})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.False(t, math.IsNaN(r.Resultant) || math.IsInf(r.Resultant, 0))
		assert.InEpsilon(t, 1.0, r.Resultant, 1e-9)
	}
	assert.InEpsilon(t, -1.0, results[0].PmY, 1e-9)
	assert.InEpsilon(t, 1.0, results[1].PmY, 1e-9)
}

func TestSolve_ZeroLoad(t *testing.T) {
	tests := []struct {
		name  string
		loads []Load
	}{
		{"empty load set", nil},
		{"all zero loads", []Load{{ID: "L1", X: 3, Y: 4}, {ID: "L2", X: -8, Y: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := Analyze(squareJoint(), tt.loads)
			require.NoError(t, err)
			assert.Equal(t, NetLoad{}, sol.Loads.Net)

			for _, r := range sol.Results {
				assert.Equal(t, Result{ID: r.ID}, r)
			}
		})
	}
}

func TestSolve_InvalidInput(t *testing.T) {
	t.Run("empty joint", func(t *testing.T) {
		_, err := Solve(nil, []Load{{ID: "L1", Px: 1}})
		var empty *EmptyJointError
		assert.ErrorAs(t, err, &empty)
	})

	geometryCases := []struct {
		name  string
		f     Fastener
		field string
	}{
		{"nan x", Fastener{ID: "bad", X: math.NaN(), Diameter: 1}, "x"},
		{"inf y", Fastener{ID: "bad", Y: math.Inf(-1), Diameter: 1}, "y"},
		{"zero diameter", Fastener{ID: "bad", Diameter: 0}, "diameter"},
		{"negative diameter", Fastener{ID: "bad", Diameter: -2}, "diameter"},
		{"infinite diameter", Fastener{ID: "bad", Diameter: math.Inf(1)}, "diameter"},
	}
	for _, tt := range geometryCases {
		t.Run(tt.name, func(t *testing.T) {
			fasteners := append(squareJoint(), tt.f)
			_, err := Solve(fasteners, nil)

			var invalid *InvalidGeometryError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, "bad", invalid.FastenerID)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Contains(t, err.Error(), `"bad"`)
		})
	}

	t.Run("duplicate fastener id", func(t *testing.T) {
		fasteners := append(squareJoint(), Fastener{ID: "F2", X: 20, Y: 20, Diameter: 5})
		_, err := Solve(fasteners, nil)

		var dup *DuplicateFastenerError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "F2", dup.ID)
	})

	t.Run("non-finite load", func(t *testing.T) {
		loads := []Load{{ID: "L1", Px: 1}, {ID: "L2", Mz: math.NaN()}}
		results, err := Solve(squareJoint(), loads)

		var invalid *InvalidLoadError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "L2", invalid.LoadID)
		assert.Equal(t, "mz", invalid.Field)
		assert.Nil(t, results)
	})
}

func TestAnalyzeGeometry_Centroid(t *testing.T) {
	fasteners := []Fastener{
		{ID: "1", X: 0, Y: 0, Diameter: 1},
		{ID: "2", X: 10, Y: 0, Diameter: 2},
		{ID: "3", X: 4, Y: 9, Diameter: 3.5},
	}

	g, err := AnalyzeGeometry(fasteners, AreaLiteral)
	require.NoError(t, err)

	var sumA, sumAx, sumAy, polar float64
	for i, f := range fasteners {
		a := math.Pi * f.Diameter
		assert.Equal(t, a, g.Fasteners[i].Area)
		sumA += a
		sumAx += a * f.X
		sumAy += a * f.Y
	}
	assert.InDelta(t, sumAx/sumA, g.Centroid.X, eps)
	assert.InDelta(t, sumAy/sumA, g.Centroid.Y, eps)
	assert.InDelta(t, sumA, g.TotalArea, eps)

	for _, fg := range g.Fasteners {
		assert.InDelta(t, g.Centroid.X-fg.X, fg.Rx, eps)
		assert.InDelta(t, g.Centroid.Y-fg.Y, fg.Ry, eps)
		assert.InDelta(t, math.Hypot(fg.Rx, fg.Ry), fg.R, eps)
		polar += fg.R2
	}
	assert.InDelta(t, polar, g.PolarMoment, eps)
}

func TestAnalyzeGeometry_AreaModes(t *testing.T) {
	fasteners := []Fastener{
		{ID: "small", X: 0, Y: 0, Diameter: 1},
		{ID: "large", X: 10, Y: 0, Diameter: 2},
	}

	literal, err := AnalyzeGeometry(fasteners, AreaLiteral)
	require.NoError(t, err)
	assert.InDelta(t, 20.0/3.0, literal.Centroid.X, eps)

	physical, err := AnalyzeGeometry(fasteners, AreaPhysical)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, physical.Centroid.X, eps)
	assert.InDelta(t, math.Pi, physical.Fasteners[1].Area, eps)

	sol, err := Analyze(fasteners, nil, WithAreaMode(AreaPhysical))
	require.NoError(t, err)
	assert.Equal(t, AreaPhysical, sol.Geometry.Mode)
}

func TestParseAreaMode(t *testing.T) {
	mode, err := ParseAreaMode("physical")
	require.NoError(t, err)
	assert.Equal(t, AreaPhysical, mode)

	mode, err = ParseAreaMode("")
	require.NoError(t, err)
	assert.Equal(t, AreaLiteral, mode)
	assert.Equal(t, "literal", mode.String())

	_, err = ParseAreaMode("exact")
	var unknown *UnknownAreaModeError
	assert.True(t, errors.As(err, &unknown))
}

func TestSolve_EquilibriumProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.IntN(12)
		fasteners := make([]Fastener, n)
		for i := range fasteners {
			fasteners[i] = Fastener{
				ID:       fmt.Sprintf("F%d", i),
				X:        rng.Float64()*200 - 100,
				Y:        rng.Float64()*200 - 100,
				Diameter: 2 + rng.Float64()*10,
			}
		}
		loads := make([]Load, 1+rng.IntN(4))
		for i := range loads {
			loads[i] = Load{
				ID: fmt.Sprintf("L%d", i),
				X:  rng.Float64()*400 - 200,
				Y:  rng.Float64()*400 - 200,
				Px: rng.Float64()*2000 - 1000,
				Py: rng.Float64()*2000 - 1000,
				Mz: rng.Float64()*1e4 - 5e3,
			}
		}

		sol, err := Analyze(fasteners, loads)
		require.NoError(t, err)

		net := sol.Loads.Net
		var sumPx, sumPy, sumMoment float64
		for i, r := range sol.Results {
			sumPx += r.Px
			sumPy += r.Py
			sumMoment += r.Pm * sol.Geometry.Fasteners[i].R
		}

		tol := func(v float64) float64 { return eps * math.Max(1, math.Abs(v)) }
		assert.InDelta(t, net.Px, sumPx, tol(net.Px), "trial %d", trial)
		assert.InDelta(t, net.Py, sumPy, tol(net.Py), "trial %d", trial)
		assert.InDelta(t, net.Mz, sumMoment, tol(net.Mz), "trial %d", trial)
	}
}

func TestSolve_Deterministic(t *testing.T) {
	loads := []Load{
		{ID: "L1", X: 12.5, Y: -3.25, Px: 140, Py: -75, Mz: 310},
		{ID: "L2", X: -1.1, Y: 8.8, Py: 55},
	}

	first, err := Solve(squareJoint(), loads)
	require.NoError(t, err)

	second, err := Solve(squareJoint(), loads)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Independent solves may run concurrently
	var wg sync.WaitGroup
	out := make([][]Result, 8)
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out[i], _ = Solve(squareJoint(), loads)
		}(i)
	}
	wg.Wait()

	for _, r := range out {
		assert.Equal(t, first, r)
	}
}

func TestSolve_DoesNotModifyInput(t *testing.T) {
	fasteners := squareJoint()
	loads := []Load{{ID: "L1", X: 1, Y: 2, Px: 3, Py: 4, Mz: 5}}

	_, err := Solve(fasteners, loads)
	require.NoError(t, err)

	assert.Equal(t, squareJoint(), fasteners)
	assert.Equal(t, []Load{{ID: "L1", X: 1, Y: 2, Px: 3, Py: 4, Mz: 5}}, loads)
}

func TestSolution_CriticalEmpty(t *testing.T) {
	idx, r := (&Solution{}).Critical()
	assert.Equal(t, -1, idx)
	assert.Equal(t, Result{}, r)
}

func ExampleSolve() {
	fasteners := []Fastener{
		{ID: "F1", X: 0, Y: 0, Diameter: 5},
		{ID: "F2", X: 10, Y: 0, Diameter: 5},
		{ID: "F3", X: 10, Y: 10, Diameter: 5},
		{ID: "F4", X: 0, Y: 10, Diameter: 5},
	}
	loads := []Load{
		{ID: "L1", X: 15, Y: 5, Py: 1000},
	}

	results, err := Solve(fasteners, loads)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, r := range results {
		fmt.Printf("%s %.2f\n", r.ID, r.Resultant)
	}

	// Output:
	// F1 250.00
	// F2 559.02
	// F3 559.02
	// F4 250.00
}
