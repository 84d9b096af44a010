package step

import (
	"fmt"
	"math"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/geom"
	"github.com/andrew-torda/stepgeom/pdb/kabsch"
)

// DistanceScale multiplies differences in CC and NN (Ångström) so they
// weigh about as much as torsion differences in degrees.
const DistanceScale = 10.0

// Similarity compares a step to a reference. RMSD is after fitting the
// extended backbones. EuclideanDistance is over the metrics.
type Similarity struct {
	RMSD              float64
	EuclideanDistance float64
}

// EuclideanDistance combines the differences between two sets of
// metrics into one number. Angles count in degrees, CC and NN are
// scaled by DistanceScale.
func EuclideanDistance(a, b *Metrics) float64 {
	var sum float64
	pa, pb := a.angles(), b.angles()
	for i := range pa {
		d := geom.AngleDiff(*pa[i], *pb[i]) * geom.Rad2Deg
		sum += d * d
	}
	dcc := (a.CC - b.CC) * DistanceScale
	dnn := (a.NN - b.NN) * DistanceScale
	sum += dcc*dcc + dnn*dnn
	return math.Sqrt(sum)
}

// observed is the part of a similarity measurement that only depends
// on the step being measured.
type observed struct {
	metrics  Metrics
	backbone []cmmn.Xyz
}

func observe(s cmmn.Structure) (*observed, error) {
	if _, err := StructureIsStep(s); err != nil {
		return nil, err
	}
	m, err := calculateMetrics(s)
	if err != nil {
		return nil, err
	}
	v, err := ExtractExtendedBackboneView(s)
	if err != nil {
		return nil, err
	}
	return &observed{metrics: m, backbone: v.Coords()}, nil
}

func (o *observed) against(ref *Reference) (Similarity, error) {
	var sim Similarity
	if ref == nil {
		return sim, fmt.Errorf("%w: nil reference", cmmn.ErrInvalidArgument)
	}
	rv, err := ExtractExtendedBackboneView(ref.Structure)
	if err != nil {
		return sim, fmt.Errorf("reference %s: %w", ref.Name, err)
	}
	if sim.RMSD, err = kabsch.Superpose(rv.Coords(), o.backbone); err != nil {
		return sim, err
	}
	sim.EuclideanDistance = EuclideanDistance(&o.metrics, &ref.Metrics)
	return sim, nil
}

// MeasureStepSimilarity compares step s to one reference.
func MeasureStepSimilarity(s cmmn.Structure, ref *Reference) (Similarity, error) {
	o, err := observe(s)
	if err != nil {
		return Similarity{}, err
	}
	return o.against(ref)
}

// MeasureStepSimilarityMany compares s to each of refs. Work on s is
// only done once. The first failure stops everything.
func MeasureStepSimilarityMany(s cmmn.Structure, refs []*Reference) ([]Similarity, error) {
	o, err := observe(s)
	if err != nil {
		return nil, err
	}
	ret := make([]Similarity, len(refs))
	for i, ref := range refs {
		if ret[i], err = o.against(ref); err != nil {
			return nil, fmt.Errorf("reference %d: %w", i, err)
		}
	}
	return ret, nil
}

// MeasureStepSimilarityNtC compares s to a reference from a table.
func MeasureStepSimilarityNtC(s cmmn.Structure, table ReferenceTable, name string) (Similarity, error) {
	ref, err := lookupRef(table, name)
	if err != nil {
		return Similarity{}, err
	}
	return MeasureStepSimilarity(s, ref)
}

// MeasureStepSimilarityStructure compares s to any other step. The
// metrics of the other step are calculated, not taken from a table.
func MeasureStepSimilarityStructure(s, other cmmn.Structure) (Similarity, error) {
	m, err := CalculateStepMetrics(other)
	if err != nil {
		return Similarity{}, fmt.Errorf("reference: %w", err)
	}
	return MeasureStepSimilarity(s, &Reference{Structure: other, Metrics: m})
}
