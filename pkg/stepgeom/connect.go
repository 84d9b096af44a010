package stepgeom

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/ntc"
	"github.com/andrew-torda/stepgeom/pdb/step"
)

// adjacent says whether the second residue of s1 is the first of s2.
func adjacent(s1, s2 cmmn.Structure) bool {
	if len(s1) == 0 || len(s2) == 0 {
		return false
	}
	return s1[len(s1)-1].SameResidue(&s2[0])
}

const connectHdr = `"first","second","ntc_first","ntc_second","c5prime","o3prime"`

// WriteConnectivity checks how well neighbouring steps join up when
// each is given its closest NtC from the grid. It returns the number
// of pairs written.
func WriteConnectivity(w io.Writer, g *Grid, tbl *ntc.Table) (int, error) {
	if _, err := fmt.Fprintln(w, connectHdr); err != nil {
		return 0, err
	}
	n := 0
	for i := 1; i < len(g.keep); i++ {
		s1, s2 := g.keep[i-1], g.keep[i]
		if !adjacent(s1, s2) {
			continue
		}
		ntc1, ntc2 := g.Best(i-1), g.Best(i)
		c, err := step.MeasureStepConnectivityNtCs(s1, ntc1, s2, ntc2, tbl)
		if err != nil {
			slog.Warn("skipping pair", slog.String("first", g.Steps[i-1]),
				slog.String("second", g.Steps[i]), slog.Any("error", err))
			continue
		}
		_, err = fmt.Fprintf(w, "%q,%q,%q,%q,%.3f,%.3f\n",
			g.Steps[i-1], g.Steps[i], ntc1, ntc2, c.C5Prime, c.O3Prime)
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
