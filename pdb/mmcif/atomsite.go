// This file parses atom_site lines into atoms.

package mmcif

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

type cifCol struct {
	cifName string // name in mmcif file, like label_asym_id
	altName string // an alternative, label_asym_id is the alt for auth_asym_id
	n       int    // where to find the column, -1 if it is not there
}

// acn holds the columns we read. The positions are the ones the PDB
// uses. They are checked and searched for if they are wrong.
type acn struct {
	id,
	typeSymbol,
	labelAtomID,
	labelAltID,
	labelCompID,
	labelAsymID,
	labelSeqID,
	pdbxPDBInsCode,
	cartnX,
	cartnY,
	cartnZ,
	authSeqID,
	authCompID,
	authAsymID,
	authAtomID,
	pdbxPDBModelNum cifCol
}

func newAcn() *acn {
	return &acn{
		id:              cifCol{"id", "", 1},
		typeSymbol:      cifCol{"type_symbol", "", 2},
		labelAtomID:     cifCol{"label_atom_id", "", 3},
		labelAltID:      cifCol{"label_alt_id", "", 4},
		labelCompID:     cifCol{"label_comp_id", "", 5},
		labelAsymID:     cifCol{"label_asym_id", "", 6},
		labelSeqID:      cifCol{"label_seq_id", "", 8},
		pdbxPDBInsCode:  cifCol{"pdbx_PDB_ins_code", "", 9},
		cartnX:          cifCol{"Cartn_x", "", 10},
		cartnY:          cifCol{"Cartn_y", "", 11},
		cartnZ:          cifCol{"Cartn_z", "", 12},
		authSeqID:       cifCol{"auth_seq_id", "label_seq_id", 16},
		authCompID:      cifCol{"auth_comp_id", "label_comp_id", 17},
		authAsymID:      cifCol{"auth_asym_id", "label_asym_id", 18},
		authAtomID:      cifCol{"auth_atom_id", "label_atom_id", 19},
		pdbxPDBModelNum: cifCol{"pdbx_PDB_model_num", "", 20},
	}
}

// all lists every column, so we can loop over them.
func (acn *acn) all() []*cifCol {
	return []*cifCol{
		&acn.id, &acn.typeSymbol, &acn.labelAtomID, &acn.labelAltID,
		&acn.labelCompID, &acn.labelAsymID, &acn.labelSeqID, &acn.pdbxPDBInsCode,
		&acn.cartnX, &acn.cartnY, &acn.cartnZ,
		&acn.authSeqID, &acn.authCompID, &acn.authAsymID, &acn.authAtomID,
		&acn.pdbxPDBModelNum,
	}
}

// sliceAfterASite takes _atom_site.foo and returns foo.
func sliceAfterASite(s bSlice) bSlice {
	const slen = len("_atom_site.")
	if len(s) < slen {
		return nil
	}
	return s[slen:]
}

// checkName says if a column is where we expect it.
func checkName(headers []bSlice, cf cifCol) bool {
	if cf.n < 0 || cf.n >= len(headers) {
		return false
	}
	return string(sliceAfterASite(headers[cf.n])) == cf.cifName
}

// dfltHeaders checks if the columns are the usual ones from the
// protein data bank, so we do not have to search for each label.
func dfltHeaders(acn *acn, headers []bSlice) bool {
	for _, cf := range acn.all() {
		if !checkName(headers, *cf) {
			return false
		}
	}
	return true
}

// findCol returns the index of a column name or -1.
func findCol(headers []bSlice, name string) int {
	for i, h := range headers {
		if string(sliceAfterASite(h)) == name {
			return i
		}
	}
	return -1
}

// getColPos is called if the default column positions were wrong.
// If the name and its alternative are both missing, n is set to -1.
func (cf *cifCol) getColPos(headers []bSlice) {
	if cf.n = findCol(headers, cf.cifName); cf.n >= 0 {
		return
	}
	if cf.altName != "" {
		cf.n = findCol(headers, cf.altName)
	}
}

// searchColNames looks for each column we want. Only the atom name,
// residue, chain and coordinates cannot be done without.
func searchColNames(acn *acn, headers []bSlice) error {
	for _, cf := range acn.all() {
		cf.getColPos(headers)
	}
	for _, cf := range []cifCol{acn.labelAtomID, acn.labelCompID, acn.labelAsymID,
		acn.labelSeqID, acn.cartnX, acn.cartnY, acn.cartnZ} {
		if cf.n < 0 {
			return errors.New("Could not find atomsite column: " + cf.cifName)
		}
	}
	return nil
}

// maxCol is the highest column index we read.
func (acn *acn) maxCol() int {
	m := -1
	for _, cf := range acn.all() {
		m = max(m, cf.n)
	}
	return m
}

// isDotOrQ returns true if the string is a dot or question mark.
func isDotOrQ(s bSlice) bool {
	return len(s) == 1 && (s[0] == '.' || s[0] == '?')
}

// chanWrap wraps the channel of line batches and hands out one line
// at a time.
type chanWrap struct {
	c       chan []bSlice
	cs      []bSlice   // current batch
	bufPool *sync.Pool // created by the reader, shared here
	scrtch  [40]bSlice
	ndx     int
}

// linechan returns the next line, or nil when the channel is closed.
func (cw *chanWrap) linechan() bSlice {
	if cw.ndx == len(cw.cs) { // refill
		if len(cw.cs) > 0 {
			cw.bufPool.Put(cw.cs[:cap(cw.cs)])
		}
		cw.cs = <-cw.c
		cw.ndx = 0
		if len(cw.cs) == 0 {
			return nil
		}
	}
	cw.ndx++
	return cw.cs[cw.ndx-1]
}

// closePool puts the last batch back in the pool.
func (cw *chanWrap) closePool() {
	if cap(cw.cs) > 0 {
		cw.bufPool.Put(cw.cs[:cap(cw.cs)])
	}
}

// cmpntChan gets the next line and breaks it into components. A
// name like "C5'" comes with quotes around it, which go.
// It returns nil at the end of input and an empty slice for a blank line.
func (cw *chanWrap) cmpntChan() []bSlice {
	s := cw.linechan()
	if s == nil {
		return nil
	}
	cmpnt := fields(s, cw.scrtch[:])
	if cmpnt == nil {
		return cw.scrtch[:0]
	}
	for i, s := range cmpnt {
		first, last := s[0], s[len(s)-1]
		if len(s) > 1 && (first == dquote && last == dquote || first == squote && last == squote) {
			cmpnt[i] = s[1 : len(s)-1]
		}
	}
	return cmpnt
}

// str gives back a column as a string. A missing column, a dot or a
// question mark all give the empty string.
func str(cmpnt []bSlice, cf cifCol) string {
	if cf.n < 0 {
		return ""
	}
	s := cmpnt[cf.n]
	if isDotOrQ(s) {
		return ""
	}
	return string(s)
}

// getInt converts a column to an int. A dot or question mark is not
// an error. It gives back dflt.
func getInt(cmpnt []bSlice, cf cifCol, dflt int) (int, error) {
	if cf.n < 0 || isDotOrQ(cmpnt[cf.n]) {
		return dflt, nil
	}
	i, err := strconv.Atoi(string(cmpnt[cf.n]))
	if err != nil {
		return dflt, fmt.Errorf("%w. Looked for %s", err, cf.cifName)
	}
	return i, nil
}

// getxyz gets the coordinates. The first error is kept and the rest
// of the calls do nothing.
func getxyz(cmpnt []bSlice, acn *acn) (cmmn.Xyz, error) {
	var err error
	ff := func(cf cifCol) float64 {
		if err != nil {
			return 0
		}
		var x float64
		x, err = strconv.ParseFloat(string(cmpnt[cf.n]), 64)
		return x
	}
	xyz := cmmn.Xyz{X: ff(acn.cartnX), Y: ff(acn.cartnY), Z: ff(acn.cartnZ)}
	return xyz, err
}

// boringLine says if the model or chain on a line is not wanted.
func boringLine(a *cmmn.Atom, fltr fltr) bool {
	if fltr.modelMax >= 0 && a.ModelNum > fltr.modelMax {
		return true
	}
	if len(fltr.chains) == 0 {
		return false
	}
	for _, c := range fltr.chains {
		if c == a.LabelAsymID || c == a.AuthAsymID {
			return false
		}
	}
	return true
}

// getAtom fills out an atom from one line.
func getAtom(cmpnt []bSlice, acn *acn, a *cmmn.Atom) error {
	var err error
	if a.ModelNum, err = getInt(cmpnt, acn.pdbxPDBModelNum, 1); err != nil {
		return err
	}
	if a.Serial, err = getInt(cmpnt, acn.id, 0); err != nil {
		return err
	}
	if a.LabelSeqID, err = getInt(cmpnt, acn.labelSeqID, cmmn.NoSeqID); err != nil {
		return err
	}
	if a.AuthSeqID, err = getInt(cmpnt, acn.authSeqID, a.LabelSeqID); err != nil {
		return err
	}
	a.Element = str(cmpnt, acn.typeSymbol)
	a.LabelAtomID = str(cmpnt, acn.labelAtomID)
	a.AuthAtomID = str(cmpnt, acn.authAtomID)
	a.LabelCompID = str(cmpnt, acn.labelCompID)
	a.AuthCompID = str(cmpnt, acn.authCompID)
	a.LabelAsymID = str(cmpnt, acn.labelAsymID)
	a.AuthAsymID = str(cmpnt, acn.authAsymID)
	a.AltID = str(cmpnt, acn.labelAltID)
	a.InsCode = str(cmpnt, acn.pdbxPDBInsCode)
	a.Coords, err = getxyz(cmpnt, acn)
	return err
}

// fillme reads lines from the channel until it is closed.
func (md *MmcifData) fillme(cw *chanWrap, fltr fltr, acn *acn) error {
	ncol := acn.maxCol() + 1
	for cmpnt := cw.cmpntChan(); cmpnt != nil; cmpnt = cw.cmpntChan() {
		if len(cmpnt) == 0 {
			continue
		}
		if len(cmpnt) < ncol {
			return fmt.Errorf("Too few components (%d) on line %q", len(cmpnt), cmpnt)
		}
		var a cmmn.Atom
		if err := getAtom(cmpnt, acn, &a); err != nil {
			return fmt.Errorf("%w on line %q", err, cmpnt)
		}
		if boringLine(&a, fltr) {
			continue
		}
		md.Atoms = append(md.Atoms, a)
	}
	return nil
}

// drain discards anything left in the channel.
func drain(c chan []bSlice) {
	for range c {
	}
}

// atomSite reads batches of lines from the channel and turns them
// into atoms. Anything that goes wrong is sent back on rChan. On
// success, rChan is just closed.
func atomSite(headers []bSlice, fltr fltr, md *MmcifData,
	c chan []bSlice, rChan chan string, bufPool *sync.Pool) {
	defer close(rChan)
	acn := newAcn()
	if !dfltHeaders(acn, headers) {
		if err := searchColNames(acn, headers); err != nil {
			drain(c)
			rChan <- err.Error()
			return
		}
	}
	cw := &chanWrap{c: c, bufPool: bufPool}
	defer cw.closePool()
	if err := md.fillme(cw, fltr, acn); err != nil {
		drain(c)
		rChan <- err.Error()
	}
}
