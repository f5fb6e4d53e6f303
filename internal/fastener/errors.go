package fastener

import "fmt"

// EmptyJointError is returned when a joint has no fasteners
type EmptyJointError struct{}

func (e *EmptyJointError) Error() string {
	return "joint must have at least one fastener"
}

// InvalidGeometryError reports a non-finite coordinate, an invalid diameter,
// or a derived quantity (area, centroid, radius) that is out of float64 range.
// FastenerID is empty for joint-level quantities.
type InvalidGeometryError struct {
	FastenerID string
	Field      string
	Value      float64
}

func (e *InvalidGeometryError) Error() string {
	switch e.Field {
	case "diameter":
		return fmt.Sprintf("fastener %q: diameter must be finite and positive, got %v", e.FastenerID, e.Value)
	case "x", "y":
		return fmt.Sprintf("fastener %q: %s must be finite, got %v", e.FastenerID, e.Field, e.Value)
	}
	if e.FastenerID == "" {
		return fmt.Sprintf("joint %s is out of range (%v); coordinates or diameters are too large", e.Field, e.Value)
	}
	return fmt.Sprintf("fastener %q: %s is out of range (%v); coordinates or diameters are too large", e.FastenerID, e.Field, e.Value)
}

// DuplicateFastenerError is returned when two fasteners share an id
type DuplicateFastenerError struct {
	ID string
}

func (e *DuplicateFastenerError) Error() string {
	return fmt.Sprintf("fastener id %q is used more than once", e.ID)
}

// InvalidLoadError reports a non-finite load field
type InvalidLoadError struct {
	LoadID string
	Field  string
	Value  float64
}

func (e *InvalidLoadError) Error() string {
	return fmt.Sprintf("load %q: %s must be finite, got %v", e.LoadID, e.Field, e.Value)
}

// DegeneratePolarInertiaError is returned when the polar moment of the
// fastener pattern is zero and the moment cannot be distributed
type DegeneratePolarInertiaError struct {
	Fasteners   int
	PolarMoment float64
}

func (e *DegeneratePolarInertiaError) Error() string {
	return fmt.Sprintf("polar moment of inertia of the fastener pattern is zero (%d fastener(s)); moment distribution is undefined", e.Fasteners)
}

// UnknownAreaModeError is returned by ParseAreaMode
type UnknownAreaModeError struct {
	Mode string
}

func (e *UnknownAreaModeError) Error() string {
	return fmt.Sprintf("unknown area mode %q (expected \"literal\" or \"physical\")", e.Mode)
}
