package ntc_test

import (
	"compress/gzip"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/andrew-torda/stepgeom/pdb/bone"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

// makeStep builds a step with random coordinates. Each residue has
// every atom its bone knows about.
func makeStep(seed int64, comp1, comp2 string) cmmn.Structure {
	rng := rand.New(rand.NewSource(seed))
	var s cmmn.Structure
	for i, comp := range []string{comp1, comp2} {
		b := bone.FindBoneLenient(comp)
		names := slices.Clone(b.Second[:])
		for _, n := range b.Base {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
		for _, n := range names {
			s = append(s, cmmn.Atom{
				Serial: len(s) + 1, Element: n[:1],
				LabelAtomID: n, AuthAtomID: n, LabelCompID: comp, AuthCompID: comp,
				LabelAsymID: "A", AuthAsymID: "A", LabelSeqID: i + 1, AuthSeqID: i + 1,
				ModelNum: 1,
				Coords:   cmmn.Xyz{X: rng.Float64() * 10, Y: rng.Float64() * 10, Z: rng.Float64() * 10},
			})
		}
	}
	return s
}

const atomHdr = `loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_alt_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_entity_id
_atom_site.label_seq_id
_atom_site.pdbx_PDB_ins_code
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.occupancy
_atom_site.B_iso_or_equiv
_atom_site.pdbx_formal_charge
_atom_site.auth_seq_id
_atom_site.auth_comp_id
_atom_site.auth_asym_id
_atom_site.auth_atom_id
_atom_site.pdbx_PDB_model_num
`

func writeAtoms(w io.Writer, name string, s cmmn.Structure) error {
	if _, err := fmt.Fprintf(w, "data_%s\n#\n%s", name, atomHdr); err != nil {
		return err
	}
	for _, a := range s {
		_, err := fmt.Fprintf(w, "ATOM %d %s \"%s\" . %s %s 1 %d ? %.3f %.3f %.3f 1.00 0.00 ? %d %s %s \"%s\" %d\n",
			a.Serial, a.Element, a.LabelAtomID, a.LabelCompID, a.LabelAsymID, a.LabelSeqID,
			a.Coords.X, a.Coords.Y, a.Coords.Z,
			a.AuthSeqID, a.AuthCompID, a.AuthAsymID, a.AuthAtomID, a.ModelNum)
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "#\n")
	return err
}

// writeCif puts a structure in dir/fname, compressed if fname ends
// in .gz.
func writeCif(t *testing.T, dir, fname string, s cmmn.Structure) {
	t.Helper()
	fp, err := os.Create(filepath.Join(dir, fname))
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	var w io.Writer = fp
	if filepath.Ext(fname) == ".gz" {
		zw := gzip.NewWriter(fp)
		defer zw.Close()
		w = zw
	}
	if err := writeAtoms(w, fname, s); err != nil {
		t.Fatal(err)
	}
}
