package step_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	. "github.com/andrew-torda/stepgeom/pdb/step"
)

func names(v cmmn.StructureView) []string {
	ret := make([]string, len(v))
	for i, a := range v {
		ret[i] = a.LabelAtomID
	}
	return ret
}

func TestProfileSizes(t *testing.T) {
	s := makeStep("DG", "DC", 5)
	pur, pyr := bone.StdPurine(), bone.StdPyrimidine()

	bb, err := ExtractBackboneView(s)
	if err != nil {
		t.Fatal(err)
	}
	if want := append(pur.PlainFirst(), pyr.PlainSecond()...); !slices.Equal(names(bb), want) {
		t.Error("backbone names", names(bb))
	}
	ext, err := ExtractExtendedBackboneView(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(ext) != NExtendedAtoms || len(ext) != 16 {
		t.Error("extended backbone has", len(ext), "atoms")
	}
	ms, err := ExtractMetricsStructureView(s)
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) != NMetricsAtoms || len(ms) != 18 {
		t.Fatal("metrics structure has", len(ms), "atoms")
	}
	if ms[bone.NFirst].LabelAtomID != "C4" || ms[len(ms)-1].LabelAtomID != "C2" {
		t.Error("second base atoms in wrong place", names(ms))
	}
	for i, a := range ms {
		wantSeq := 1
		if i > bone.NFirst {
			wantSeq = 2
		}
		if a.LabelSeqID != wantSeq {
			t.Errorf("atom %d %s from residue %d", i, a.LabelAtomID, a.LabelSeqID)
		}
	}
}

// TestExtractShares checks that a view points into the source and
// that an owned copy does not.
func TestExtractShares(t *testing.T) {
	s := makeStep("A", "A", 6)
	v, err := ExtractBackboneView(s)
	if err != nil {
		t.Fatal(err)
	}
	i := indexOf(s, 1, "C5'")
	if v[0] != &s[i] {
		t.Error("view does not point into source")
	}
	c, err := ExtractBackbone(s)
	if err != nil {
		t.Fatal(err)
	}
	c[0].Coords.X += 1
	if s[i].Coords == c[0].Coords {
		t.Error("owned extraction shares atoms with source")
	}
}

func TestExtractDeterministic(t *testing.T) {
	s := makeStep("G", "U", 7)
	v1, err1 := ExtractMetricsStructureView(s)
	v2, err2 := ExtractMetricsStructureView(s)
	if err1 != nil || err2 != nil {
		t.Fatal(err1, err2)
	}
	if !slices.Equal(v1, v2) {
		t.Error("two extractions differ")
	}
}

// TestExtractAlt has the first residue with two conformations of C4'.
// The first alt id seen in the residue is the one we want.
func TestExtractAlt(t *testing.T) {
	s := makeStep("C", "G", 8)
	i := indexOf(s, 1, "C4'")
	s[i].AltID = "A"
	b := s[i]
	b.AltID = "B"
	b.Coords.X += 5
	s = slices.Insert(s, i, b)
	// B is now first in the file, so it is what we get
	v, err := ExtractBackboneView(s)
	if err != nil {
		t.Fatal(err)
	}
	if v[1].LabelAtomID != "C4'" || v[1].AltID != "B" {
		t.Error("wrong alternate picked", v[1].AltID)
	}
}

func TestExtractList(t *testing.T) {
	s := makeStep("DA", "DT", 9)
	w := []Wanted{
		{ModelNum: 1, Chain: "A", SeqID: 2, CompID: "DT", AtomName: "P"},
		{ModelNum: 1, Chain: "A", SeqID: 1, CompID: "DA", AtomName: "N9"},
	}
	got, err := Extract(s, w)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].LabelAtomID != "P" || got[0].LabelSeqID != 2 || got[1].LabelAtomID != "N9" {
		t.Error("extracted in wrong order", got)
	}
	for _, bad := range []Wanted{
		{ModelNum: 2, Chain: "A", SeqID: 2, CompID: "DT", AtomName: "P"},
		{ModelNum: 1, Chain: "B", SeqID: 2, CompID: "DT", AtomName: "P"},
		{ModelNum: 1, Chain: "A", SeqID: 2, CompID: "DC", AtomName: "P"},
		{ModelNum: 1, Chain: "A", SeqID: 2, CompID: "DT", AtomName: "N9"},
	} {
		if _, err := Extract(s, append(w, bad)); !errors.Is(err, cmmn.ErrMissingAtoms) {
			t.Errorf("%+v should be missing, got %v", bad, err)
		}
	}
}

func TestExtractUnknown(t *testing.T) {
	s := makeStep("A", "A", 10)
	for i := range s {
		s[i].LabelCompID = "HOH"
	}
	if _, err := ExtractExtendedBackbone(s); !errors.Is(err, cmmn.ErrUnknownResidue) {
		t.Error("expected ErrUnknownResidue, got", err)
	}
	if _, err := ExtractExtendedBackbone(nil); !errors.Is(err, cmmn.ErrInvalidArgument) {
		t.Error("expected ErrInvalidArgument, got", err)
	}
}
