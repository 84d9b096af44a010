package step_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	. "github.com/andrew-torda/stepgeom/pdb/step"
)

var steptests = []struct {
	c1, c2 string
	k1, k2 bone.BaseKind
}{
	{"DG", "DC", bone.Purine, bone.Pyrimidine},
	{"U", "A", bone.Pyrimidine, bone.Purine},
	{"5MC", "OMG", bone.Pyrimidine, bone.Purine},
	{"PSU", "G", bone.NonStandardBase, bone.Purine},
	{"C", "6HT", bone.Pyrimidine, bone.Pyrimidine},
	{"SDG", "TSU", bone.Purine, bone.Pyrimidine},
}

func TestIsStep(t *testing.T) {
	for i, st := range steptests {
		s := makeStep(st.c1, st.c2, int64(i))
		info, err := StructureIsStep(s)
		if err != nil {
			t.Errorf("%s-%s: %v", st.c1, st.c2, err)
			continue
		}
		want := Info{
			FirstLabelSeqID: 1, SecondLabelSeqID: 2,
			FirstAuthSeqID: 101, SecondAuthSeqID: 102,
			FirstBase: st.k1, SecondBase: st.k2,
		}
		if info != want {
			t.Errorf("%s-%s: wanted %+v got %+v", st.c1, st.c2, want, info)
		}
	}
}

// TestMissingBackbone takes away each backbone atom in turn. Every time
// both checking and extraction have to fail.
func TestMissingBackbone(t *testing.T) {
	s := makeStep("A", "U", 1)
	pur, pyr := bone.StdPurine(), bone.StdPyrimidine()
	type gone struct {
		seq  int
		name string
	}
	var todo []gone
	for _, n := range pur.PlainFirst() {
		todo = append(todo, gone{1, n})
	}
	for _, n := range pyr.PlainSecond() {
		todo = append(todo, gone{2, n})
	}
	for _, g := range todo {
		s2 := without(s, g.seq, g.name)
		if len(s2) != len(s)-1 {
			t.Fatal("test broken, did not remove", g)
		}
		if _, err := StructureIsStep(s2); !errors.Is(err, cmmn.ErrMissingAtoms) {
			t.Errorf("residue %d without %s: expected ErrMissingAtoms, got %v", g.seq, g.name, err)
		}
		if bb, err := ExtractBackbone(s2); !errors.Is(err, cmmn.ErrMissingAtoms) || bb != nil {
			t.Errorf("residue %d without %s: extraction should fail, got %v", g.seq, g.name, err)
		}
	}
}

func TestMissingBase(t *testing.T) {
	s := makeStep("A", "U", 2)
	for _, g := range []struct {
		seq  int
		name string
	}{{1, "C4"}, {2, "C2"}} {
		if _, err := StructureIsStep(without(s, g.seq, g.name)); !errors.Is(err, cmmn.ErrMissingAtoms) {
			t.Errorf("residue %d without %s: expected ErrMissingAtoms, got %v", g.seq, g.name, err)
		}
	}
}

func TestStepErrors(t *testing.T) {
	s := makeStep("G", "C", 3)

	twoAlt := s.Clone()
	i := indexOf(twoAlt, 1, "C4'")
	twoAlt[i].AltID = "A"
	extra := twoAlt[i]
	extra.AltID = "B"
	twoAlt = slices.Insert(twoAlt, i+1, extra)

	dup := s.Clone()
	i = indexOf(dup, 1, "C3'")
	dup = slices.Insert(dup, i+1, dup[i])

	split := s.Clone()
	split[indexOf(split, 2, "C4'")].LabelSeqID = 3

	unknown := s.Clone()
	for i := range unknown {
		if unknown[i].LabelSeqID == 2 {
			unknown[i].LabelCompID = "XYZ"
		}
	}

	noSecondSize := without(s, 2, "C1'")

	for _, tc := range []struct {
		name string
		s    cmmn.Structure
		err  error
	}{
		{"empty", nil, cmmn.ErrInvalidArgument},
		{"two alt ids", twoAlt, cmmn.ErrMultipleAltIds},
		{"duplicate atom", dup, cmmn.ErrMismatchingSizes},
		{"no C1'", noSecondSize, cmmn.ErrMismatchingSizes},
		{"split residue", split, cmmn.ErrMismatchingData},
		{"unknown residue", unknown, cmmn.ErrUnknownResidue},
	} {
		if _, err := StructureIsStep(tc.s); !errors.Is(err, tc.err) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.err, err)
		}
	}
}

// TestOneAltID has a residue where some atoms carry an alt id and the
// rest do not. That is a single conformation and is fine.
func TestOneAltID(t *testing.T) {
	s := makeStep("DA", "DT", 4)
	for i := range s {
		if s[i].LabelSeqID == 2 && s[i].LabelAtomID != "P" {
			s[i].AltID = "B"
		}
	}
	if _, err := StructureIsStep(s); err != nil {
		t.Error(err)
	}
}
