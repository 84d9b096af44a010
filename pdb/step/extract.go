package step

import (
	"fmt"

	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

// Wanted says which atom to pull out of a structure. An empty AltID
// means any alternate conformation will do.
type Wanted struct {
	ModelNum int
	Chain    string
	SeqID    int
	CompID   string
	AltID    string
	AtomName string
}

func (w *Wanted) String() string {
	s := fmt.Sprintf("%s %d %s/%s model %d", w.Chain, w.SeqID, w.CompID, w.AtomName, w.ModelNum)
	if w.AltID != "" {
		s += " alt " + w.AltID
	}
	return s
}

// matches applies the rules for one atom. Identity must match exactly.
// An atom without an alt id always matches. One with an alt id matches
// if we do not care, or if it is the one we want.
func (w *Wanted) matches(a *cmmn.Atom) bool {
	if a.ModelNum != w.ModelNum || a.LabelSeqID != w.SeqID ||
		a.LabelAsymID != w.Chain || a.LabelCompID != w.CompID ||
		a.LabelAtomID != w.AtomName {
		return false
	}
	return a.AltID == "" || w.AltID == "" || a.AltID == w.AltID
}

// find returns the first atom in s that w matches, or nil.
func find(s cmmn.Structure, w *Wanted) *cmmn.Atom {
	for i := range s {
		if w.matches(&s[i]) {
			return &s[i]
		}
	}
	return nil
}

// ExtractView returns a view with one atom for each of wanted, in the
// same order. If any atom cannot be found, nothing is returned.
func ExtractView(s cmmn.Structure, wanted []Wanted) (cmmn.StructureView, error) {
	v := make(cmmn.StructureView, len(wanted))
	for i := range wanted {
		a := find(s, &wanted[i])
		if a == nil {
			return nil, fmt.Errorf("%w: %s", cmmn.ErrMissingAtoms, &wanted[i])
		}
		v[i] = a
	}
	return v, nil
}

// Extract is ExtractView, but returns its own copy of the atoms.
func Extract(s cmmn.Structure, wanted []Wanted) (cmmn.Structure, error) {
	v, err := ExtractView(s, wanted)
	if err != nil {
		return nil, err
	}
	return v.Structure(), nil
}

// residue is what we need to build Wanted entries for one residue.
type residue struct {
	modelNum int
	chain    string
	seqID    int
	compID   string
	altID    string
}

// residueOf takes its identity from atom a. The alt id is the first
// non-empty one among the atoms of that residue.
func residueOf(s cmmn.Structure, a *cmmn.Atom) residue {
	r := residue{
		modelNum: a.ModelNum,
		chain:    a.LabelAsymID,
		seqID:    a.LabelSeqID,
		compID:   a.LabelCompID,
	}
	for i := range s {
		if s[i].AltID != "" && s[i].SameResidue(a) {
			r.altID = s[i].AltID
			break
		}
	}
	return r
}

func (r *residue) want(names ...string) []Wanted {
	w := make([]Wanted, len(names))
	for i, n := range names {
		w[i] = Wanted{
			ModelNum: r.modelNum,
			Chain:    r.chain,
			SeqID:    r.seqID,
			CompID:   r.compID,
			AltID:    r.altID,
			AtomName: n,
		}
	}
	return w
}

// profile picks which names of a bone go into an extraction.
type profile int

const (
	plainProfile profile = iota
	extendedProfile
	metricsProfile
)

// stepResidues finds the two residues of a step and their bones. The
// first atom belongs to the first residue and the last atom to the
// second.
func stepResidues(s cmmn.Structure) (r1, r2 residue, b1, b2 *bone.Bone, err error) {
	if len(s) == 0 {
		err = fmt.Errorf("%w: empty structure", cmmn.ErrInvalidArgument)
		return
	}
	first, last := &s[0], &s[len(s)-1]
	if b1, err = bone.FindBone(first.LabelCompID); err != nil {
		return
	}
	if b2, err = bone.FindBone(last.LabelCompID); err != nil {
		return
	}
	return residueOf(s, first), residueOf(s, last), b1, b2, nil
}

// wantedFor gives the atoms of a step for one extraction profile.
func wantedFor(s cmmn.Structure, p profile) ([]Wanted, error) {
	r1, r2, b1, b2, err := stepResidues(s)
	if err != nil {
		return nil, err
	}
	var w []Wanted
	switch p {
	case plainProfile:
		w = append(r1.want(b1.PlainFirst()...), r2.want(b2.PlainSecond()...)...)
	case extendedProfile:
		w = append(r1.want(b1.ExtendedFirst()...), r2.want(b2.ExtendedSecond()...)...)
	case metricsProfile:
		w = make([]Wanted, 0, NMetricsAtoms)
		w = append(w, r1.want(b1.ExtendedFirst()...)...)
		w = append(w, r1.want(b1.Base[1])...)
		w = append(w, r2.want(b2.ExtendedSecond()...)...)
		w = append(w, r2.want(b2.Base[1])...)
	default:
		panic("unknown extraction profile")
	}
	return w, nil
}

func extractView(s cmmn.Structure, p profile) (cmmn.StructureView, error) {
	w, err := wantedFor(s, p)
	if err != nil {
		return nil, err
	}
	return ExtractView(s, w)
}

func extract(s cmmn.Structure, p profile) (cmmn.Structure, error) {
	v, err := extractView(s, p)
	if err != nil {
		return nil, err
	}
	return v.Structure(), nil
}

// Sizes of the extracted sets.
const (
	NBackboneAtoms = bone.NPlainFirst + bone.NPlainSecond
	NExtendedAtoms = bone.NFirst + bone.NSecond
	NMetricsAtoms  = NExtendedAtoms + 2
)

// ExtractBackbone pulls out the sugar-phosphate backbone of a step,
// without the sugar atom carrying the base or the base itself.
func ExtractBackbone(s cmmn.Structure) (cmmn.Structure, error) {
	return extract(s, plainProfile)
}

// ExtractBackboneView is ExtractBackbone without copying atoms.
func ExtractBackboneView(s cmmn.Structure) (cmmn.StructureView, error) {
	return extractView(s, plainProfile)
}

// ExtractExtendedBackbone adds the sugar atom carrying the base and the
// first base atom of each residue. This is what gets superposed.
func ExtractExtendedBackbone(s cmmn.Structure) (cmmn.Structure, error) {
	return extract(s, extendedProfile)
}

// ExtractExtendedBackboneView is ExtractExtendedBackbone without copying.
func ExtractExtendedBackboneView(s cmmn.Structure) (cmmn.StructureView, error) {
	return extractView(s, extendedProfile)
}

// ExtractMetricsStructure is the extended backbone with the second base
// atom of each residue, which is enough for all the step metrics. The
// order is the first residue's extended names, its second base atom,
// then the same for the second residue.
func ExtractMetricsStructure(s cmmn.Structure) (cmmn.Structure, error) {
	return extract(s, metricsProfile)
}

// ExtractMetricsStructureView is ExtractMetricsStructure without copying.
func ExtractMetricsStructureView(s cmmn.Structure) (cmmn.StructureView, error) {
	return extractView(s, metricsProfile)
}
