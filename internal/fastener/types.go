package fastener

// Fastener is a single connector of a joint (rivet, bolt or spot weld)
type Fastener struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`        // Position in the joint plane
	Y        float64 `json:"y"`        // Position in the joint plane
	Diameter float64 `json:"diameter"` // Must be positive
}

// Load is an in-plane load applied to the joint at (X, Y)
type Load struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`  // Application point
	Y  float64 `json:"y"`  // Application point
	Px float64 `json:"px"` // Force along X
	Py float64 `json:"py"` // Force along Y
	Mz float64 `json:"mz"` // Moment about the application point
}

// Point represents a 2D coordinate
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AreaMode selects the formula used for the fastener area
type AreaMode int

const (
	// AreaLiteral uses area = π·d. This is the historical formula of the method
	// implementation and the default; it is not dimensionally an area.
	AreaLiteral AreaMode = iota

	// AreaPhysical uses the cross-section area π·d²/4.
	AreaPhysical
)

// String returns the flag/config name of the mode
func (m AreaMode) String() string {
	switch m {
	case AreaLiteral:
		return "literal"
	case AreaPhysical:
		return "physical"
	default:
		return "unknown"
	}
}

// ParseAreaMode converts a flag/config value into an AreaMode
func ParseAreaMode(s string) (AreaMode, error) {
	switch s {
	case "", "literal":
		return AreaLiteral, nil
	case "physical":
		return AreaPhysical, nil
	default:
		return AreaLiteral, &UnknownAreaModeError{Mode: s}
	}
}

// FastenerGeometry holds the derived geometry of one fastener
type FastenerGeometry struct {
	Fastener

	Area  float64 // Area according to the joint AreaMode
	AreaX float64 // Area·X
	AreaY float64 // Area·Y

	// Distance from the fastener to the joint centroid
	Rx float64 // centroid_x - X
	Ry float64 // centroid_y - Y
	R  float64
	R2 float64
}

// JointGeometry is the derived geometry table of a joint
type JointGeometry struct {
	Mode      AreaMode
	Fasteners []FastenerGeometry

	Centroid    Point   // Area-weighted centroid (center of resistance)
	TotalArea   float64 // Σ Area
	PolarMoment float64 // Σ R² of the fastener pattern
}

// TranslatedLoad is a load moved to the joint centroid
type TranslatedLoad struct {
	Load

	Rx float64 // centroid_x - X
	Ry float64 // centroid_y - Y

	PxC float64
	PyC float64
	MzC float64 // Mz plus the moment of the transferred force
}

// NetLoad is the resultant force-moment system at the centroid
type NetLoad struct {
	Px float64
	Py float64
	Mz float64
}

// LoadTranslation holds every translated load and their sum
type LoadTranslation struct {
	Loads []TranslatedLoad
	Net   NetLoad
}

// Result holds the shear load components of one fastener
type Result struct {
	ID string `json:"fastener_id"`

	// Direct shear (uniform split of the net force)
	Px float64 `json:"fastener_px"`
	Py float64 `json:"fastener_py"`

	// Moment-induced shear
	Pm  float64 `json:"fastener_pm"`
	PmX float64 `json:"fastener_pm_x"`
	PmY float64 `json:"fastener_pm_y"`

	// Superposed components and magnitude
	PHorizontal float64 `json:"fastener_p_horizontal"`
	PVertical   float64 `json:"fastener_p_vertical"`
	Resultant   float64 `json:"fastener_resultant_load"`
}

// Solution carries the results of a solve together with its intermediate tables
type Solution struct {
	Geometry *JointGeometry
	Loads    *LoadTranslation
	Results  []Result
}

// Critical returns the index and result of the most loaded fastener.
// The first fastener wins on ties.
func (s *Solution) Critical() (int, Result) {
	if len(s.Results) == 0 {
		return -1, Result{}
	}

	idx := 0
	for i, r := range s.Results {
		if r.Resultant > s.Results[idx].Resultant {
			idx = i
		}
	}
	return idx, s.Results[idx]
}
