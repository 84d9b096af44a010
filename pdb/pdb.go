// Package pdb is the upper level for reading structure files.
// Decide if a file is compressed or not and what format we are going
// to read. Then call the mmcif reader.
package pdb

import (
	"bufio"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/mmcif"
	"github.com/andrew-torda/stepgeom/pdb/step"
	"github.com/andrew-torda/stepgeom/pdb/zwrap"
)

type format byte

const (
	oldFmt format = iota
	mmcifFmt
	unkFmt
)

// lookInFile guesses from the first lines if a file is in old PDB
// format or in mmcif.
func lookInFile(fname string) (format, error) {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM"}
	mmcifWords := []string{"data_", "_entry.id", "loop_"}
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return unkFmt, err
	}
	defer rdr.Close()

	const maxTestLines = 5000
	scnnr := bufio.NewScanner(rdr)
	for i := 0; i < maxTestLines && scnnr.Scan(); i++ {
		s := scnnr.Text()
		for _, w := range mmcifWords {
			if strings.HasPrefix(s, w) {
				return mmcifFmt, nil
			}
		}
		for _, w := range pdbWords {
			if strings.HasPrefix(s, w) {
				return oldFmt, nil
			}
		}
	}
	return unkFmt, fmt.Errorf("%w: %s: cannot recognise format", cmmn.ErrInvalidArgument, fname)
}

// oldOrMmcif decides what format we have. It uses the file name if it
// can, otherwise it peeks inside.
// filepath.Ext would give .gz for a.cif.gz, so we look at everything
// after the first dot.
func oldOrMmcif(fname string) (format, error) {
	s := filepath.Base(fname)
	if i := strings.IndexByte(s, '.'); i != -1 {
		s = strings.ToLower(s[i+1:])
		switch {
		case strings.Contains(s, "cif"):
			return mmcifFmt, nil
		case strings.Contains(s, "pdb") || strings.Contains(s, "ent"):
			return oldFmt, nil
		}
	}
	return lookInFile(fname)
}

// ReadMmcif opens a file, compressed or not, and reads it. set, if
// not nil, is called on the reader first, so the caller can ask for
// tables, data items, chains or models.
func ReadMmcif(fname string, set func(*mmcif.MmcifReader)) (*mmcif.MmcifData, error) {
	typ, err := oldOrMmcif(fname)
	if err != nil {
		return nil, err
	}
	if typ == oldFmt {
		return nil, fmt.Errorf("%w: %s: old pdb format is not read, only mmcif", cmmn.ErrInvalidArgument, fname)
	}
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()

	mr := mmcif.NewMmcifReader(rdr)
	if set != nil {
		set(mr)
	}
	md, err := mr.DoFile()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	slog.Debug("read mmcif", slog.String("file", fname), slog.Int("atoms", len(md.Atoms)),
		slog.Int("tables", len(md.Tables)))
	return md, nil
}

// ReadStructure reads all the atoms from a file.
func ReadStructure(fname string) (cmmn.Structure, error) {
	md, err := ReadMmcif(fname, nil)
	if err != nil {
		return nil, err
	}
	if len(md.Atoms) == 0 {
		return nil, fmt.Errorf("%w: %s: no atoms", cmmn.ErrMissingAtoms, fname)
	}
	return md.Atoms, nil
}

// ReadSteps reads a file and cuts it into steps with step.Split. modelMax and chains
// restrict what is read, as in mmcif.MmcifReader.
func ReadSteps(fname string, modelMax int, chains []string) ([]cmmn.Structure, error) {
	md, err := ReadMmcif(fname, func(mr *mmcif.MmcifReader) {
		mr.SetModelMax(modelMax)
		mr.SetChains(chains)
	})
	if err != nil {
		return nil, err
	}
	return step.Split(md.Atoms), nil
}
