package step

import (
	"fmt"

	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/kabsch"
)

// Connectivity says how well two steps join up. Each is the distance
// between where the two steps put the same atom of their shared
// residue.
type Connectivity struct {
	C5Prime float64
	O3Prime float64
}

// Positions in an extended backbone of the atoms we measure.
const (
	firstC5  = bone.FirstC5
	firstO3  = bone.FirstO3
	secondC5 = bone.NFirst + bone.SecondC5
	secondO3 = bone.NFirst + bone.SecondO3
)

// fitted superposes the extended backbone of ref onto that of pos and
// returns the moved reference coordinates.
func fitted(pos cmmn.StructureView, ref cmmn.Structure) ([]cmmn.Xyz, error) {
	rv, err := ExtractExtendedBackboneView(ref)
	if err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	xyz := rv.Coords()
	if _, err := kabsch.Superpose(xyz, pos.Coords()); err != nil {
		return nil, err
	}
	return xyz, nil
}

// position checks a step from a real structure and pulls out its
// extended backbone.
func position(s cmmn.Structure) (cmmn.StructureView, error) {
	if _, err := StructureIsStep(s); err != nil {
		return nil, err
	}
	return ExtractExtendedBackboneView(s)
}

func connect(first, second []cmmn.Xyz) Connectivity {
	return Connectivity{
		C5Prime: first[secondC5].Dist(second[firstC5]),
		O3Prime: first[secondO3].Dist(second[firstO3]),
	}
}

// MeasureStepConnectivity takes two consecutive steps, posFirst and
// posSecond, sharing a residue. refFirst is placed onto posFirst and
// refSecond onto posSecond. The result says how far apart the two
// placed references have put the C5' and O3' atoms of the shared
// residue.
func MeasureStepConnectivity(posFirst, refFirst, posSecond, refSecond cmmn.Structure) (Connectivity, error) {
	cs, err := MeasureStepConnectivityMany(posFirst, refFirst, posSecond, []cmmn.Structure{refSecond})
	if err != nil {
		return Connectivity{}, err
	}
	return cs[0], nil
}

// MeasureStepConnectivityMany is MeasureStepConnectivity for a list of
// candidates for the second step. The first step is only fitted once.
// The first failure stops everything.
func MeasureStepConnectivityMany(posFirst, refFirst, posSecond cmmn.Structure, refsSecond []cmmn.Structure) ([]Connectivity, error) {
	p1, err := position(posFirst)
	if err != nil {
		return nil, fmt.Errorf("first step: %w", err)
	}
	p2, err := position(posSecond)
	if err != nil {
		return nil, fmt.Errorf("second step: %w", err)
	}
	f1, err := fitted(p1, refFirst)
	if err != nil {
		return nil, err
	}
	ret := make([]Connectivity, len(refsSecond))
	for i, ref := range refsSecond {
		f2, err := fitted(p2, ref)
		if err != nil {
			return nil, fmt.Errorf("second reference %d: %w", i, err)
		}
		ret[i] = connect(f1, f2)
	}
	return ret, nil
}

// MeasureStepConnectivityManyFirst is MeasureStepConnectivityMany with
// the list of candidates on the first step.
func MeasureStepConnectivityManyFirst(posFirst cmmn.Structure, refsFirst []cmmn.Structure, posSecond, refSecond cmmn.Structure) ([]Connectivity, error) {
	p1, err := position(posFirst)
	if err != nil {
		return nil, fmt.Errorf("first step: %w", err)
	}
	p2, err := position(posSecond)
	if err != nil {
		return nil, fmt.Errorf("second step: %w", err)
	}
	f2, err := fitted(p2, refSecond)
	if err != nil {
		return nil, err
	}
	ret := make([]Connectivity, len(refsFirst))
	for i, ref := range refsFirst {
		f1, err := fitted(p1, ref)
		if err != nil {
			return nil, fmt.Errorf("first reference %d: %w", i, err)
		}
		ret[i] = connect(f1, f2)
	}
	return ret, nil
}

// MeasureStepConnectivityNtCs is MeasureStepConnectivity with the
// references taken from a table by name.
func MeasureStepConnectivityNtCs(posFirst cmmn.Structure, ntcFirst string, posSecond cmmn.Structure, ntcSecond string, table ReferenceTable) (Connectivity, error) {
	r1, err := lookupRef(table, ntcFirst)
	if err != nil {
		return Connectivity{}, err
	}
	r2, err := lookupRef(table, ntcSecond)
	if err != nil {
		return Connectivity{}, err
	}
	return MeasureStepConnectivity(posFirst, r1.Structure, posSecond, r2.Structure)
}
