package threadcad

// SurfaceKind is the geometric type of a face's underlying surface.
// Kernels expose loosely typed handles; the contract narrows them to a
// small closed set so callers match on enums instead of type strings.
type SurfaceKind uint8

const (
	SurfaceUnknown SurfaceKind = iota
	SurfaceCylinder
	SurfacePlane
	SurfaceSphere
)

func (s SurfaceKind) String() string {
	switch s {
	case SurfaceCylinder:
		return "cylinder"
	case SurfacePlane:
		return "plane"
	case SurfaceSphere:
		return "sphere"
	}
	return "unknown"
}

// CurveKind is the geometric type of an edge's underlying curve.
type CurveKind uint8

const (
	CurveUnknown CurveKind = iota
	CurveLine
	CurveCircle
)

func (c CurveKind) String() string {
	switch c {
	case CurveLine:
		return "line"
	case CurveCircle:
		return "circle"
	}
	return "unknown"
}

// FeatureKind classifies the modeling feature that created a face.
// Used as a fallback signal when classifying internal/external surfaces.
type FeatureKind uint8

const (
	FeatureUnknown FeatureKind = iota
	FeatureHole
	FeatureCutExtrude
	FeatureCutRevolve
	FeatureExtrude
	FeatureRevolve
	FeatureSweep
)

// Cutting reports whether the feature removes material. Hole and cut-type
// features create internal surfaces.
func (f FeatureKind) Cutting() bool {
	return f == FeatureHole || f == FeatureCutExtrude || f == FeatureCutRevolve
}

func (f FeatureKind) String() string {
	switch f {
	case FeatureHole:
		return "hole"
	case FeatureCutExtrude:
		return "cut-extrude"
	case FeatureCutRevolve:
		return "cut-revolve"
	case FeatureExtrude:
		return "extrude"
	case FeatureRevolve:
		return "revolve"
	case FeatureSweep:
		return "sweep"
	}
	return "unknown"
}
