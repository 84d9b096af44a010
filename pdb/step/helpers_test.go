package step_test

import (
	"math"
	"math/rand"
	"slices"

	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	. "github.com/andrew-torda/stepgeom/pdb/step"
)

// residueNames is every atom name a residue of this type gets in the
// test structures, including a couple which play no part.
func residueNames(b *bone.Bone) []string {
	names := slices.Clone(b.Second[:])
	for _, n := range []string{b.Base[0], b.Base[1], "C2'", "C3'", "OP1"} {
		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}
	return names
}

func randXyz(rng *rand.Rand) cmmn.Xyz {
	return cmmn.Xyz{X: rng.Float64() * 10, Y: rng.Float64() * 10, Z: rng.Float64() * 10}
}

func addResidue(s cmmn.Structure, comp string, seq int, rng *rand.Rand) cmmn.Structure {
	b := bone.FindBoneLenient(comp)
	for _, n := range residueNames(b) {
		s = append(s, cmmn.Atom{
			Serial:      len(s) + 1,
			Element:     n[:1],
			LabelAtomID: n,
			AuthAtomID:  n,
			LabelCompID: comp,
			AuthCompID:  comp,
			LabelAsymID: "A",
			AuthAsymID:  "A",
			LabelSeqID:  seq,
			AuthSeqID:   seq + 100,
			ModelNum:    1,
			Coords:      randXyz(rng),
		})
	}
	return s
}

// makeChain builds residues numbered from 1 with random coordinates.
func makeChain(seed int64, comps ...string) cmmn.Structure {
	rng := rand.New(rand.NewSource(seed))
	var s cmmn.Structure
	for i, c := range comps {
		s = addResidue(s, c, i+1, rng)
	}
	return s
}

func makeStep(comp1, comp2 string, seed int64) cmmn.Structure {
	return makeChain(seed, comp1, comp2)
}

// without returns a copy of s with the named atom of one residue gone.
func without(s cmmn.Structure, seq int, name string) cmmn.Structure {
	return slices.DeleteFunc(s.Clone(), func(a cmmn.Atom) bool {
		return a.LabelSeqID == seq && a.LabelAtomID == name
	})
}

func indexOf(s cmmn.Structure, seq int, name string) int {
	return slices.IndexFunc(s, func(a cmmn.Atom) bool {
		return a.LabelSeqID == seq && a.LabelAtomID == name
	})
}

// moved returns a copy of s turned by a about z, by b about x and then
// shifted.
func moved(s cmmn.Structure, a, b float64, shift cmmn.Xyz) cmmn.Structure {
	ret := s.Clone()
	ca, sa := math.Cos(a), math.Sin(a)
	cb, sb := math.Cos(b), math.Sin(b)
	for i := range ret {
		p := ret[i].Coords
		q := cmmn.Xyz{X: ca*p.X - sa*p.Y, Y: sa*p.X + ca*p.Y, Z: p.Z}
		r := cmmn.Xyz{X: q.X, Y: cb*q.Y - sb*q.Z, Z: sb*q.Y + cb*q.Z}
		ret[i].Coords = r.Add(shift)
	}
	return ret
}

// mapTable is the simplest ReferenceTable.
type mapTable map[string]*Reference

func (t mapTable) Reference(name string) (*Reference, bool) {
	r, ok := t[name]
	return r, ok
}

func closeTo(a, b, eps float64) bool { return math.Abs(a-b) <= eps }
