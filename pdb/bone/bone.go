// Package bone knows which atoms of a residue play which part in step
// geometry. Standard nucleotides all use the same names. Modified
// residues mostly do too, but some have their base bonded through a
// carbon, or a sugar with differently named atoms. A Bone holds the
// names for one residue type.
package bone

import (
	"fmt"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

// BaseKind says what sort of base a residue has.
type BaseKind int

const (
	UnknownBase BaseKind = iota
	Purine
	Pyrimidine
	NonStandardBase
)

func (k BaseKind) String() string {
	switch k {
	case Purine:
		return "purine"
	case Pyrimidine:
		return "pyrimidine"
	case NonStandardBase:
		return "nonstandard"
	}
	return "unknown"
}

// Positions in Bone.First and Bone.Second. The first four of First and
// the first six of Second are the chain of atoms the backbone torsions
// run along.
const (
	FirstC5   = 0 // Position of C5' in First
	FirstO3   = 3
	FirstRing = 4 // Ring atom next to the anchor, O4' for ribose
	FirstC1   = 5 // Sugar atom carrying the base
	FirstN    = 6 // Base atom bonded to the sugar

	SecondC5   = 2
	SecondO3   = 5
	SecondRing = 6
	SecondC1   = 7
	SecondN    = 8

	NFirst       = 7
	NSecond      = 9
	NPlainFirst  = 5 // Plain backbone is First[:5] and Second[:7]
	NPlainSecond = 7
)

// Bone holds the atom names for one residue type.
// First is used when the residue is the first of a step, Second when it
// is the second. Base[0] is the base atom bonded to the sugar, Base[1]
// the next base atom along the glycosidic torsion. BaseQuad defines the
// glycosidic torsion, chi.
type Bone struct {
	Name        string
	First       [NFirst]string
	Second      [NSecond]string
	Base        [2]string
	BaseQuad    [4]string
	StdBackbone bool
	StdBase     bool
	kind        BaseKind
}

// Kind is the sort of base this bone has.
func (b *Bone) Kind() BaseKind { return b.kind }

// The two standard bones. Every standard residue resolves to one of these.
var (
	stdPurine = Bone{
		Name:        "purine",
		First:       [NFirst]string{"C5'", "C4'", "C3'", "O3'", "O4'", "C1'", "N9"},
		Second:      [NSecond]string{"P", "O5'", "C5'", "C4'", "C3'", "O3'", "O4'", "C1'", "N9"},
		Base:        [2]string{"N9", "C4"},
		BaseQuad:    [4]string{"O4'", "C1'", "N9", "C4"},
		StdBackbone: true,
		StdBase:     true,
		kind:        Purine,
	}
	stdPyrimidine = Bone{
		Name:        "pyrimidine",
		First:       [NFirst]string{"C5'", "C4'", "C3'", "O3'", "O4'", "C1'", "N1"},
		Second:      [NSecond]string{"P", "O5'", "C5'", "C4'", "C3'", "O3'", "O4'", "C1'", "N1"},
		Base:        [2]string{"N1", "C2"},
		BaseQuad:    [4]string{"O4'", "C1'", "N1", "C2"},
		StdBackbone: true,
		StdBase:     true,
		kind:        Pyrimidine,
	}
)

// StdPurine and StdPyrimidine return copies of the standard bones.
func StdPurine() Bone     { return stdPurine }
func StdPyrimidine() Bone { return stdPyrimidine }

// priority is checked before the map. These are most of what one sees.
var priority = [...]struct {
	name string
	bone *Bone
}{
	{"DG", &stdPurine}, {"DC", &stdPyrimidine}, {"DA", &stdPurine}, {"DT", &stdPyrimidine},
	{"G", &stdPurine}, {"C", &stdPyrimidine}, {"A", &stdPurine}, {"U", &stdPyrimidine},
}

func findPriority(name string) *Bone {
	for i := range priority {
		if priority[i].name == name {
			return priority[i].bone
		}
	}
	return nil
}

// IsStandardResidue is true for A, C, G, U, DA, DC, DG and DT.
func IsStandardResidue(name string) bool { return findPriority(name) != nil }

// IsKnownResidue is true for standard residues and for every modified
// residue in the table.
func IsKnownResidue(name string) bool {
	if findPriority(name) != nil {
		return true
	}
	_, ok := modified[name]
	return ok
}

// FindBaseKind gives the sort of base of a residue, UnknownBase if we
// have never heard of it.
func FindBaseKind(name string) BaseKind {
	if b := lookup(name); b != nil {
		return b.kind
	}
	return UnknownBase
}

func lookup(name string) *Bone {
	if b := findPriority(name); b != nil {
		return b
	}
	return modified[name]
}

// FindBone returns the Bone for a residue name. An unknown residue is
// an error, since carrying on with the wrong atom names gives wrong
// geometry without complaint.
func FindBone(name string) (*Bone, error) {
	if b := lookup(name); b != nil {
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", cmmn.ErrUnknownResidue, name)
}

// FindBoneLenient is FindBone, but an unknown residue gets the
// standard purine bone.
func FindBoneLenient(name string) *Bone {
	if b := lookup(name); b != nil {
		return b
	}
	return &stdPurine
}

// ExtendedFirst and ExtendedSecond are the names used when checking a
// step and when superposing: the whole of First or Second.
func (b *Bone) ExtendedFirst() []string  { return b.First[:] }
func (b *Bone) ExtendedSecond() []string { return b.Second[:] }

// PlainFirst and PlainSecond are the backbone without the sugar atom
// carrying the base and without the base.
func (b *Bone) PlainFirst() []string  { return b.First[:NPlainFirst] }
func (b *Bone) PlainSecond() []string { return b.Second[:NPlainSecond] }
