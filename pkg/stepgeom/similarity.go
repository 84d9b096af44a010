package stepgeom

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/ntc"
	"github.com/andrew-torda/stepgeom/pdb/step"
)

// Grid holds every step measured against every reference. Row i is
// Steps[i], column j is Refs[j]. Steps which could not be measured
// have no row.
type Grid struct {
	Steps []string
	Refs  []string
	RMSD  *matrix.FMatrix2d
	Dist  *matrix.FMatrix2d
	best  []int
	keep  []cmmn.Structure // the steps behind each row
}

// refsOf lists the references in a table in a fixed order.
func refsOf(tbl *ntc.Table) ([]string, []*step.Reference) {
	names := tbl.Loaded()
	refs := make([]*step.Reference, len(names))
	for i, n := range names {
		refs[i], _ = tbl.Reference(n)
	}
	return names, refs
}

// bestOf is the reference closest in metrics. Ties go to the first.
func bestOf(sims []step.Similarity) int {
	best := -1
	for i, s := range sims {
		if best < 0 || s.EuclideanDistance < sims[best].EuclideanDistance {
			best = i
		}
	}
	return best
}

// NewGrid measures each step against each reference in tbl.
func NewGrid(steps []cmmn.Structure, tbl *ntc.Table) (*Grid, error) {
	if tbl.Len() == 0 {
		return nil, fmt.Errorf("%w: empty reference table", cmmn.ErrInvalidArgument)
	}
	g := &Grid{}
	var refs []*step.Reference
	g.Refs, refs = refsOf(tbl)
	var rows [][]step.Similarity
	for _, s := range steps {
		sims, err := step.MeasureStepSimilarityMany(s, refs)
		if err != nil {
			slog.Warn("skipping step", slog.String("step", StepLabel(s)), slog.Any("error", err))
			continue
		}
		rows = append(rows, sims)
		g.Steps = append(g.Steps, StepLabel(s))
		g.keep = append(g.keep, s)
		g.best = append(g.best, bestOf(sims))
	}
	if len(rows) == 0 {
		return g, nil
	}
	g.RMSD = matrix.NewFMatrix2d(len(rows), len(refs))
	g.Dist = matrix.NewFMatrix2d(len(rows), len(refs))
	for i, sims := range rows {
		for j, s := range sims {
			g.RMSD.Mat[i][j] = float32(s.RMSD)
			g.Dist.Mat[i][j] = float32(s.EuclideanDistance)
		}
	}
	slog.Debug("similarity grid", slog.Int("steps", len(rows)), slog.Int("refs", len(refs)),
		slog.Int("skipped", len(steps)-len(rows)))
	return g, nil
}

// Best gives the name of the closest reference for row i.
func (g *Grid) Best(i int) string {
	return g.Refs[g.best[i]]
}

const similarityHdr = `"step","ntc","rmsd","distance"`

// WriteSimilarity writes the grid one step and reference per line. If
// best is set, only the closest reference for each step is written.
func WriteSimilarity(w io.Writer, g *Grid, best bool) error {
	if _, err := fmt.Fprintln(w, similarityHdr); err != nil {
		return err
	}
	for i, label := range g.Steps {
		for j, ref := range g.Refs {
			if best && j != g.best[i] {
				continue
			}
			_, err := fmt.Fprintf(w, "%q,%q,%.3f,%.2f\n", label, ref, g.RMSD.Mat[i][j], g.Dist.Mat[i][j])
			if err != nil {
				return err
			}
		}
	}
	return nil
}
