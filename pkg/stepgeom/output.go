package stepgeom

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

// nopCloser lets standard output be closed with everything else.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOut gives back the output file. If there is no filename or the
// filename is "-", write to standard output.
func openOut(fname string) (io.WriteCloser, error) {
	if fname == "" || fname == "-" {
		return nopCloser{os.Stdout}, nil
	}
	if _, err := os.Stat(fname); err == nil {
		slog.Warn("overwriting", slog.String("file", fname))
	}
	fp, err := os.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("output file %v: %w", fname, err)
	}
	return fp, nil
}

// writeOut opens fname, lets write fill it and closes it. The first
// error wins, so a failed close on a full disk is not lost.
func writeOut(fname string, write func(w io.Writer) error) error {
	fp, err := openOut(fname)
	if err != nil {
		return err
	}
	return writeClose(fp, fname, write)
}

func writeClose(wc io.WriteCloser, fname string, write func(w io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing %v: %w", fname, cerr)
	}
	return err
}

// StepLabel names a step the way people do, chain then the two
// residues with their author numbering, like A_DG_12_DC_13. An
// insertion code is tacked on to its residue number.
func StepLabel(s cmmn.Structure) string {
	if len(s) == 0 {
		return ""
	}
	first, last := &s[0], &s[len(s)-1]
	res := func(a *cmmn.Atom) string {
		return fmt.Sprintf("%s_%d%s", a.AuthCompID, a.AuthSeqID, a.InsCode)
	}
	label := []string{first.AuthAsymID, res(first), res(last)}
	if first.ModelNum > 1 {
		label = append([]string{fmt.Sprintf("m%d", first.ModelNum)}, label...)
	}
	return strings.Join(label, "_")
}
