package step

import (
	"fmt"
	"slices"

	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

// Info is what we know about a step once it has been checked.
type Info struct {
	FirstLabelSeqID  int
	SecondLabelSeqID int
	FirstAuthSeqID   int
	SecondAuthSeqID  int
	FirstBase        bone.BaseKind
	SecondBase       bone.BaseKind
}

// collect returns the atoms of s whose names are in names.
func collect(s cmmn.Structure, names []string) []*cmmn.Atom {
	var ret []*cmmn.Atom
	for i := range s {
		if slices.Contains(names, s[i].LabelAtomID) {
			ret = append(ret, &s[i])
		}
	}
	return ret
}

// nAltIDs counts the different alternate conformation tags.
func nAltIDs(atoms []*cmmn.Atom) int {
	var seen []string
	for _, a := range atoms {
		if a.AltID != "" && !slices.Contains(seen, a.AltID) {
			seen = append(seen, a.AltID)
		}
	}
	return len(seen)
}

// missing returns the first of names not found in atoms, or "".
func missing(atoms []*cmmn.Atom, names []string) string {
	for _, n := range names {
		if !slices.ContainsFunc(atoms, func(a *cmmn.Atom) bool { return a.LabelAtomID == n }) {
			return n
		}
	}
	return ""
}

// hasAtom looks for a named atom in the same residue as a.
func hasAtom(s cmmn.Structure, a *cmmn.Atom, name string) bool {
	for i := range s {
		if s[i].LabelAtomID == name && s[i].SameResidue(a) {
			return true
		}
	}
	return false
}

// StructureIsStep checks that s is two residues which make up a step,
// with every backbone atom present once, and says who they are. The
// atoms of the first residue must come before those of the second.
func StructureIsStep(s cmmn.Structure) (Info, error) {
	var info Info
	if len(s) == 0 {
		return info, fmt.Errorf("%w: empty structure", cmmn.ErrInvalidArgument)
	}
	b1, err := bone.FindBone(s[0].LabelCompID)
	if err != nil {
		return info, err
	}
	b2, err := bone.FindBone(s[len(s)-1].LabelCompID)
	if err != nil {
		return info, err
	}

	set1 := collect(s, b1.ExtendedFirst())
	set2 := collect(s, b2.ExtendedSecond())
	if len(set1) == 0 {
		return info, fmt.Errorf("%w: no backbone atoms in first residue", cmmn.ErrMissingAtoms)
	}
	firstSeq := set1[0].LabelSeqID
	for _, a := range set1 {
		firstSeq = min(firstSeq, a.LabelSeqID)
	}
	set1 = slices.DeleteFunc(set1, func(a *cmmn.Atom) bool { return a.LabelSeqID != firstSeq })
	set2 = slices.DeleteFunc(set2, func(a *cmmn.Atom) bool { return a.LabelSeqID == firstSeq })

	if nAltIDs(set1) > 1 {
		return info, fmt.Errorf("%w: first residue", cmmn.ErrMultipleAltIds)
	}
	if nAltIDs(set2) > 1 {
		return info, fmt.Errorf("%w: second residue", cmmn.ErrMultipleAltIds)
	}
	if n := missing(set1, b1.PlainFirst()); n != "" {
		return info, fmt.Errorf("%w: %s in first residue", cmmn.ErrMissingAtoms, n)
	}
	if n := missing(set2, b2.PlainSecond()); n != "" {
		return info, fmt.Errorf("%w: %s in second residue", cmmn.ErrMissingAtoms, n)
	}
	if len(set1) != bone.NFirst {
		return info, fmt.Errorf("%w: first residue has %d backbone atoms, wanted %d",
			cmmn.ErrMismatchingSizes, len(set1), bone.NFirst)
	}
	if len(set2) != bone.NSecond {
		return info, fmt.Errorf("%w: second residue has %d backbone atoms, wanted %d",
			cmmn.ErrMismatchingSizes, len(set2), bone.NSecond)
	}
	secondSeq := set2[0].LabelSeqID
	for _, a := range set2[1:] {
		if a.LabelSeqID != secondSeq {
			return info, fmt.Errorf("%w: second residue has sequence ids %d and %d",
				cmmn.ErrMismatchingData, secondSeq, a.LabelSeqID)
		}
	}

	a1, a2 := set1[0], set2[0]
	k1, k2 := bone.FindBaseKind(a1.LabelCompID), bone.FindBaseKind(a2.LabelCompID)
	if k1 == bone.UnknownBase || k2 == bone.UnknownBase {
		return info, fmt.Errorf("%w: cannot tell base kind of %s or %s",
			cmmn.ErrInvalidArgument, a1.LabelCompID, a2.LabelCompID)
	}
	for _, n := range b1.Base {
		if !hasAtom(s, a1, n) {
			return info, fmt.Errorf("%w: base atom %s in first residue", cmmn.ErrMissingAtoms, n)
		}
	}
	for _, n := range b2.Base {
		if !hasAtom(s, a2, n) {
			return info, fmt.Errorf("%w: base atom %s in second residue", cmmn.ErrMissingAtoms, n)
		}
	}

	info = Info{
		FirstLabelSeqID:  a1.LabelSeqID,
		SecondLabelSeqID: a2.LabelSeqID,
		FirstAuthSeqID:   a1.AuthSeqID,
		SecondAuthSeqID:  a2.AuthSeqID,
		FirstBase:        k1,
		SecondBase:       k2,
	}
	return info, nil
}
