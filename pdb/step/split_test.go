package step_test

import (
	"testing"

	. "github.com/andrew-torda/stepgeom/pdb/step"
)

func TestSplit(t *testing.T) {
	s := makeChain(50, "G", "C", "HOH", "A", "U", "PSU")
	steps := Split(s)
	// G-C, A-U and U-PSU. Nothing with the water.
	if len(steps) != 3 {
		t.Fatal("wanted 3 steps, got", len(steps))
	}
	for i, want := range [][2]int{{1, 2}, {4, 5}, {5, 6}} {
		st := steps[i]
		if st[0].LabelSeqID != want[0] || st[len(st)-1].LabelSeqID != want[1] {
			t.Errorf("step %d is %d-%d", i, st[0].LabelSeqID, st[len(st)-1].LabelSeqID)
		}
		if _, err := StructureIsStep(st); err != nil {
			t.Errorf("step %d: %v", i, err)
		}
	}
}

func TestSplitGapsAndChains(t *testing.T) {
	s := makeChain(51, "A", "A", "A", "A")
	for i := range s {
		switch s[i].LabelSeqID {
		case 2:
			s[i].LabelSeqID = 12 // gap between 1 and 12
		case 4:
			s[i].LabelAsymID = "B"
		}
	}
	// 1 then 12 is a gap. 12 and 3 are not in order. 3 and 4 are in
	// different chains.
	if steps := Split(s); len(steps) != 0 {
		t.Error("wanted no steps, got", len(steps))
	}
}

// TestSplitAlt has two conformations of the second residue. Only the
// first seen survives, which leaves a step that passes the check.
func TestSplitAlt(t *testing.T) {
	s := makeChain(52, "C", "G")
	n := len(s)
	for i := 0; i < n; i++ {
		if s[i].LabelSeqID != 2 {
			continue
		}
		s[i].AltID = "A"
		b := s[i]
		b.AltID = "B"
		s = append(s, b)
	}
	steps := Split(s)
	if len(steps) != 1 {
		t.Fatal("wanted one step, got", len(steps))
	}
	for _, a := range steps[0] {
		if a.AltID == "B" {
			t.Fatal("second conformation kept")
		}
	}
	if _, err := StructureIsStep(steps[0]); err != nil {
		t.Error(err)
	}
	if _, err := StructureIsStep(s); err == nil {
		t.Error("the unsplit structure has two conformations and should fail")
	}
}
