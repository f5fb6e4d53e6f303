package fastener

// TranslateLoads moves every load to the centroid and sums the translated
// components. An empty load set gives a zero net load.
func TranslateLoads(loads []Load, centroid Point) (*LoadTranslation, error) {
	t := &LoadTranslation{
		Loads: make([]TranslatedLoad, len(loads)),
	}

	for i, l := range loads {
		if err := validateLoad(l); err != nil {
			return nil, err
		}

		tl := TranslatedLoad{Load: l}
		tl.Rx = centroid.X - l.X
		tl.Ry = centroid.Y - l.Y

		// Forces are unchanged, the transfer adds a couple
		tl.PxC = l.Px
		tl.PyC = l.Py
		tl.MzC = l.Mz + l.Px*tl.Ry + (-1)*l.Py*tl.Rx

		t.Net.Px += tl.PxC
		t.Net.Py += tl.PyC
		t.Net.Mz += tl.MzC
		t.Loads[i] = tl
	}

	return t, nil
}

func validateLoad(l Load) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"x", l.X},
		{"y", l.Y},
		{"px", l.Px},
		{"py", l.Py},
		{"mz", l.Mz},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return &InvalidLoadError{LoadID: l.ID, Field: f.name, Value: f.value}
		}
	}
	return nil
}
