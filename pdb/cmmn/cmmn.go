// Package pdb/cmmn has common definitions for coordinates, atoms and
// structures. Everything else in pdb/ builds on these.
package cmmn

import (
	"math"
)

// Xyz is a point or a vector in Ångström.
type Xyz struct{ X, Y, Z float64 }

func (a Xyz) Add(b Xyz) Xyz       { return Xyz{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Xyz) Sub(b Xyz) Xyz       { return Xyz{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Xyz) Scale(f float64) Xyz { return Xyz{a.X * f, a.Y * f, a.Z * f} }
func (a Xyz) Dot(b Xyz) float64   { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func (a Xyz) Len2() float64       { return a.Dot(a) }
func (a Xyz) Len() float64        { return math.Sqrt(a.Dot(a)) }
func (a Xyz) Dist(b Xyz) float64  { return a.Sub(b).Len() }
func (a Xyz) IsNaN() bool         { return math.IsNaN(a.X) || math.IsNaN(a.Y) || math.IsNaN(a.Z) }

// Cross returns the vector product a x b
func (a Xyz) Cross(b Xyz) Xyz {
	return Xyz{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Atom is one line from an atom_site table. The label fields are the
// structural identifiers and are what we match on. The auth fields are
// what the authors called things and are only carried for reporting.
// An atom belongs to the Structure that holds it and is not changed
// once built, except for its coordinates during superposition.
type Atom struct {
	Serial      int
	Element     string
	LabelAtomID string
	AuthAtomID  string
	LabelCompID string // Residue name, like "DG" or "PSU"
	AuthCompID  string
	LabelAsymID string // Chain
	AuthAsymID  string
	LabelSeqID  int
	AuthSeqID   int
	AltID       string // "" if there is no alternate conformation
	InsCode     string
	ModelNum    int
	Coords      Xyz
}

// NoSeqID is the sequence id of an atom whose file did not give one,
// like a water with a "." in label_seq_id.
const NoSeqID = math.MinInt32

// SameResidue says whether two atoms come from the same residue of the
// same model.
func (a *Atom) SameResidue(b *Atom) bool {
	return a.ModelNum == b.ModelNum &&
		a.LabelAsymID == b.LabelAsymID &&
		a.LabelSeqID == b.LabelSeqID &&
		a.InsCode == b.InsCode &&
		a.LabelCompID == b.LabelCompID
}

// Structure is an ordered set of atoms. Order matters. A step, for
// example, is expected to have the atoms of its first residue before
// those of the second.
type Structure []Atom

// Coords returns a fresh slice with the coordinates of every atom.
func (s Structure) Coords() []Xyz {
	ret := make([]Xyz, len(s))
	for i := range s {
		ret[i] = s[i].Coords
	}
	return ret
}

// SetCoords writes coordinates back into a structure. The lengths must match.
func (s Structure) SetCoords(xyz []Xyz) error {
	if len(xyz) != len(s) {
		return ErrMismatchingSizes
	}
	for i := range s {
		s[i].Coords = xyz[i]
	}
	return nil
}

// Clone returns a deep copy, so coordinates can be moved without
// touching the original.
func (s Structure) Clone() Structure {
	ret := make(Structure, len(s))
	copy(ret, s)
	return ret
}

// View returns a StructureView onto every atom of s.
func (s Structure) View() StructureView {
	v := make(StructureView, len(s))
	for i := range s {
		v[i] = &s[i]
	}
	return v
}

// StructureView is a set of pointers into the atoms of some Structure.
// It does not own anything. It is read-only and must not be kept after
// its source has been appended to or resliced, since the source may have
// moved to new storage and the view would still point at the old atoms.
type StructureView []*Atom

// Structure copies the atoms the view points at into a new Structure.
func (v StructureView) Structure() Structure {
	ret := make(Structure, len(v))
	for i, a := range v {
		ret[i] = *a
	}
	return ret
}

// Coords returns the coordinates the view points at.
func (v StructureView) Coords() []Xyz {
	ret := make([]Xyz, len(v))
	for i, a := range v {
		ret[i] = a.Coords
	}
	return ret
}
