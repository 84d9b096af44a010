package step

import (
	"fmt"
	"math"

	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/geom"
)

// Metrics are the numbers that describe the shape of a step. Torsions
// and Mu are in radians, CC and NN in Ångström.
type Metrics struct {
	Delta1   float64
	Epsilon1 float64
	Zeta1    float64
	Alpha2   float64
	Beta2    float64
	Gamma2   float64
	Delta2   float64
	Chi1     float64
	Chi2     float64
	CC       float64 // Between the sugar atoms carrying the bases
	NN       float64 // Between the base atoms bonded to the sugars
	Mu       float64
}

// nAngle is the number of angles in Metrics, nine torsions and Mu.
const nAngle = 10

// angles returns pointers to every angle, backbone torsions first.
func (m *Metrics) angles() [nAngle]*float64 {
	return [nAngle]*float64{
		&m.Delta1, &m.Epsilon1, &m.Zeta1, &m.Alpha2, &m.Beta2, &m.Gamma2, &m.Delta2,
		&m.Chi1, &m.Chi2, &m.Mu,
	}
}

// Torsions gives the seven backbone torsions in the order of
// bone.BackboneQuads followed by the two chi torsions.
func (m *Metrics) Torsions() []float64 {
	return []float64{m.Delta1, m.Epsilon1, m.Zeta1, m.Alpha2, m.Beta2,
		m.Gamma2, m.Delta2, m.Chi1, m.Chi2}
}

// Degrees returns a copy with the angles in degrees.
func (m Metrics) Degrees() Metrics {
	for _, p := range m.angles() {
		*p *= geom.Rad2Deg
	}
	return m
}

// Sub gives m - ref. Angles are wrapped into (-pi, pi].
func (m Metrics) Sub(ref *Metrics) Metrics {
	pm, pr := m.angles(), ref.angles()
	for i := range pm {
		*pm[i] = geom.AngleDiff(*pm[i], *pr[i])
	}
	m.CC -= ref.CC
	m.NN -= ref.NN
	return m
}

func (m *Metrics) hasNaN() bool {
	for _, p := range m.angles() {
		if math.IsNaN(*p) {
			return true
		}
	}
	return math.IsNaN(m.CC) || math.IsNaN(m.NN)
}

// stepAtoms looks up atoms by name and residue in a metrics structure.
type stepAtoms struct {
	res [2]cmmn.StructureView
}

func newStepAtoms(v cmmn.StructureView) stepAtoms {
	n1 := bone.NFirst + 1
	return stepAtoms{res: [2]cmmn.StructureView{v[:n1], v[n1:]}}
}

func (sa *stepAtoms) xyz(res bone.Residue, name string) (cmmn.Xyz, error) {
	for _, a := range sa.res[res] {
		if a.LabelAtomID == name {
			return a.Coords, nil
		}
	}
	return cmmn.Xyz{}, fmt.Errorf("%w: %s", cmmn.ErrMissingAtoms, name)
}

func (sa *stepAtoms) dihedral(q bone.Quad) (float64, error) {
	var x [4]cmmn.Xyz
	for i, qa := range q {
		var err error
		if x[i], err = sa.xyz(qa.Res, qa.Name); err != nil {
			return 0, err
		}
	}
	return geom.Dihedral(x[0], x[1], x[2], x[3]), nil
}

// baseQuad is the chi torsion quad for one residue.
func baseQuad(b *bone.Bone, res bone.Residue) bone.Quad {
	var q bone.Quad
	for i, n := range b.BaseQuad {
		q[i] = bone.QuadAtom{Name: n, Res: res}
	}
	return q
}

// metricsOf does the work on a metrics structure view of a step that
// has already been checked.
func metricsOf(v cmmn.StructureView, b1, b2 *bone.Bone) (Metrics, error) {
	var m Metrics
	if len(v) != NMetricsAtoms {
		return m, fmt.Errorf("%w: %d atoms in metrics structure", cmmn.ErrMismatchingSizes, len(v))
	}
	sa := newStepAtoms(v)
	quads := bone.Quads(b1, b2)
	pm := m.angles()
	for i := range quads {
		var err error
		if *pm[i], err = sa.dihedral(quads[i]); err != nil {
			return m, err
		}
	}
	var err error
	if m.Chi1, err = sa.dihedral(baseQuad(b1, bone.FirstRes)); err != nil {
		return m, err
	}
	if m.Chi2, err = sa.dihedral(baseQuad(b2, bone.SecondRes)); err != nil {
		return m, err
	}

	c1, n1 := v[bone.FirstC1].Coords, v[bone.FirstN].Coords
	off := bone.NFirst + 1
	c2, n2 := v[off+bone.SecondC1].Coords, v[off+bone.SecondN].Coords
	m.CC = geom.Dist(c1, c2)
	m.NN = geom.Dist(n1, n2)
	m.Mu = geom.Dihedral(n1, c1, c2, n2)

	if m.hasNaN() {
		return m, fmt.Errorf("%w: metrics are not numbers, degenerate geometry", cmmn.ErrBadData)
	}
	return m, nil
}

// CalculateStepMetrics checks that s is a step and measures it.
func CalculateStepMetrics(s cmmn.Structure) (Metrics, error) {
	if _, err := StructureIsStep(s); err != nil {
		return Metrics{}, err
	}
	return calculateMetrics(s)
}

// calculateMetrics is CalculateStepMetrics without the check.
func calculateMetrics(s cmmn.Structure) (Metrics, error) {
	_, _, b1, b2, err := stepResidues(s)
	if err != nil {
		return Metrics{}, err
	}
	v, err := extractView(s, metricsProfile)
	if err != nil {
		return Metrics{}, err
	}
	return metricsOf(v, b1, b2)
}

// CalculateStepMetricsDifferenceAgainstReference measures s and
// returns how far it is from the averages of the named reference.
func CalculateStepMetricsDifferenceAgainstReference(s cmmn.Structure, table ReferenceTable, name string) (Metrics, error) {
	ref, err := lookupRef(table, name)
	if err != nil {
		return Metrics{}, err
	}
	m, err := CalculateStepMetrics(s)
	if err != nil {
		return m, err
	}
	return m.Sub(&ref.Metrics), nil
}
