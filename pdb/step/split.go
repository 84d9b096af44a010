package step

import (
	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

// resKey identifies a residue while splitting.
type resKey struct {
	model   int
	chain   string
	seqID   int
	insCode string
}

func keyOf(a *cmmn.Atom) resKey {
	return resKey{a.ModelNum, a.LabelAsymID, a.LabelSeqID, a.InsCode}
}

// resAtoms is a residue and the atoms we kept for it.
type resAtoms struct {
	key   resKey
	comp  string
	alt   string
	atoms cmmn.Structure
}

// residues groups atoms into residues in the order they first appear.
// An atom whose alt id differs from the first one seen in its residue
// is dropped.
func residues(s cmmn.Structure) []*resAtoms {
	var ret []*resAtoms
	byKey := make(map[resKey]*resAtoms)
	for i := range s {
		a := &s[i]
		k := keyOf(a)
		r, ok := byKey[k]
		if !ok {
			r = &resAtoms{key: k, comp: a.LabelCompID}
			byKey[k] = r
			ret = append(ret, r)
		}
		if a.AltID != "" {
			if r.alt == "" {
				r.alt = a.AltID
			} else if a.AltID != r.alt {
				continue
			}
		}
		r.atoms = append(r.atoms, *a)
	}
	return ret
}

// follows says whether r2 is the residue after r1 in the same chain.
func follows(r1, r2 *resAtoms) bool {
	return r1.key.model == r2.key.model && r1.key.chain == r2.key.chain &&
		r2.key.seqID == r1.key.seqID+1
}

// Split cuts a structure into steps. Each step is a pair of residues
// next to each other in one chain of one model, both of which we know
// about. Nothing is checked beyond that, so a step may still fail
// StructureIsStep, for example if it is missing atoms.
func Split(s cmmn.Structure) []cmmn.Structure {
	res := residues(s)
	var steps []cmmn.Structure
	for i := 1; i < len(res); i++ {
		r1, r2 := res[i-1], res[i]
		if !follows(r1, r2) || !bone.IsKnownResidue(r1.comp) || !bone.IsKnownResidue(r2.comp) {
			continue
		}
		st := make(cmmn.Structure, 0, len(r1.atoms)+len(r2.atoms))
		st = append(st, r1.atoms...)
		st = append(st, r2.atoms...)
		steps = append(steps, st)
	}
	return steps
}
