package step_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	. "github.com/andrew-torda/stepgeom/pdb/step"
)

// twoSteps cuts three residues into two steps sharing the middle one.
func twoSteps(t *testing.T, seed int64, c1, c2, c3 string) (cmmn.Structure, cmmn.Structure) {
	t.Helper()
	steps := Split(makeChain(seed, c1, c2, c3))
	if len(steps) != 2 {
		t.Fatal("wanted two steps, got", len(steps))
	}
	return steps[0], steps[1]
}

func TestConnectSelf(t *testing.T) {
	p1, p2 := twoSteps(t, 40, "G", "C", "A")
	r1 := moved(p1, 0.5, 1.5, cmmn.Xyz{X: 3})
	r2 := moved(p2, -1.0, 0.2, cmmn.Xyz{Y: -8})
	c, err := MeasureStepConnectivity(p1, r1, p2, r2)
	if err != nil {
		t.Fatal(err)
	}
	if c.C5Prime > 1e-6 || c.O3Prime > 1e-6 {
		t.Errorf("references cut from the structure should join up %+v", c)
	}
}

func TestConnectOther(t *testing.T) {
	p1, p2 := twoSteps(t, 41, "DG", "DG", "DC")
	o1, o2 := twoSteps(t, 42, "DA", "DT", "DT")
	c, err := MeasureStepConnectivity(p1, p1, p2, o2)
	if err != nil {
		t.Fatal(err)
	}
	if c.C5Prime < 0.01 || c.O3Prime < 0.01 {
		t.Errorf("unrelated references join too well %+v", c)
	}
	cs, err := MeasureStepConnectivityMany(p1, p1, p2, []cmmn.Structure{p2, o2})
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 || cs[0].C5Prime > 1e-6 || cs[1] != c {
		t.Errorf("batch connectivity %+v, single %+v", cs, c)
	}
	cs, err = MeasureStepConnectivityManyFirst(p1, []cmmn.Structure{o1, p1}, p2, p2)
	if err != nil {
		t.Fatal(err)
	}
	if len(cs) != 2 || cs[1].O3Prime > 1e-6 || cs[0].O3Prime < 0.01 {
		t.Errorf("batch connectivity on first step %+v", cs)
	}
}

func TestConnectErrors(t *testing.T) {
	p1, p2 := twoSteps(t, 43, "U", "U", "U")
	_, err := MeasureStepConnectivityMany(p1, p1, p2, []cmmn.Structure{p2, nil})
	if !errors.Is(err, cmmn.ErrInvalidArgument) || !strings.Contains(err.Error(), "reference 1") {
		t.Error("empty reference should fail naming its index, got", err)
	}
	broken := without(p2, 2, "O3'")
	if _, err := MeasureStepConnectivity(p1, p1, broken, p2); !errors.Is(err, cmmn.ErrMissingAtoms) {
		t.Error("expected ErrMissingAtoms, got", err)
	}
}

func TestConnectNtCs(t *testing.T) {
	p1, p2 := twoSteps(t, 44, "A", "A", "A")
	table := mapTable{
		"AA00": {Name: "AA00", Structure: moved(p1, 0.1, 0.2, cmmn.Xyz{})},
		"AA01": {Name: "AA01", Structure: moved(p2, 0.3, 0.4, cmmn.Xyz{})},
	}
	c, err := MeasureStepConnectivityNtCs(p1, "AA00", p2, "AA01", table)
	if err != nil || c.C5Prime > 1e-6 {
		t.Error(c, err)
	}
	if _, err := MeasureStepConnectivityNtCs(p1, "AA00", p2, "XX", table); !errors.Is(err, cmmn.ErrInvalidArgument) {
		t.Error("expected ErrInvalidArgument, got", err)
	}
}
