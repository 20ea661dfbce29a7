// Package outline converts B-rep faces into flat 2-D vector geometry.
// The exact pipeline walks wires and classifies curves into primitives;
// when curve data is missing it falls back to reconstructing the
// outline from the face's triangle mesh, and as a last resort emits a
// fixed placeholder so an export never fails outright.
package outline

// Config collects the pipeline's tunable thresholds. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	// CurveSamples is the sample count for discretizing free-form
	// curves on the export path.
	CurveSamples int

	// FallbackCurveSamples is the sample count used when a circle or
	// ellipse edge fails exact evaluation and degrades to a polyline.
	FallbackCurveSamples int

	// DuplicateTolerance drops a sampled point lying within this
	// distance of the previous one.
	DuplicateTolerance float64

	// FullCircleTolerance is the allowed deviation, in radians, of an
	// edge's parameter range from 2π for it to count as a full circle
	// or ellipse.
	FullCircleTolerance float64

	// CenterClusterTolerance is the per-coordinate distance within
	// which candidate arc centers are considered the same during
	// consolidation.
	CenterClusterTolerance float64

	// CoverageThreshold is the minimum estimated angular coverage, in
	// degrees, for an arc group to consolidate into a circle.
	CoverageThreshold float64

	// HoleMinRadius and HoleMaxRadius bound the radial distance for a
	// point to join a hole cluster.
	HoleMinRadius float64
	HoleMaxRadius float64

	// HoleDistanceTolerance is the relative tolerance (fraction of the
	// candidate radius) for grouping points at a common distance.
	HoleDistanceTolerance float64

	// MinHolePoints is the minimum cluster size for a candidate hole.
	MinHolePoints int

	// CircleFitTolerance is the relative radial deviation allowed for
	// a cluster point to count as on-circle.
	CircleFitTolerance float64

	// CircleFitFraction is the fraction of cluster points that must be
	// on-circle for the cluster to classify as a circular hole.
	CircleFitFraction float64
}

// DefaultConfig returns the thresholds of the reference behavior.
func DefaultConfig() Config {
	return Config{
		CurveSamples:           20,
		FallbackCurveSamples:   12,
		DuplicateTolerance:     0.001,
		FullCircleTolerance:    0.01,
		CenterClusterTolerance: 0.1,
		CoverageThreshold:      300,
		HoleMinRadius:          1.0,
		HoleMaxRadius:          10.0,
		HoleDistanceTolerance:  0.2,
		MinHolePoints:          6,
		CircleFitTolerance:     0.25,
		CircleFitFraction:      0.75,
	}
}
