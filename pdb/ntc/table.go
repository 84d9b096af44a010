// Package ntc holds the reference conformers, one per NtC class.
// A Table is what the step package wants as a step.ReferenceTable.
package ntc

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/andrew-torda/stepgeom/pdb"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/geom"
	"github.com/andrew-torda/stepgeom/pdb/mmcif"
	"github.com/andrew-torda/stepgeom/pdb/step"
)

// AveragesFile is the name of the optional file, in the reference
// directory, with the average metrics of each class.
const AveragesFile = "ntc_averages.cif"

// averagesTable is the loop in AveragesFile. Angles are in degrees,
// distances in Ångström.
const averagesTable = "_ntc_average"

// Table is a read-only set of references. It is safe to share.
type Table struct {
	refs map[string]*step.Reference
}

// New builds a table. Each reference must have a known NtC name and
// a structure, and no name may come twice.
func New(refs ...*step.Reference) (*Table, error) {
	t := &Table{refs: make(map[string]*step.Reference, len(refs))}
	for _, r := range refs {
		if r == nil || !IsName(r.Name) {
			return nil, fmt.Errorf("%w: reference is not an NtC", cmmn.ErrInvalidArgument)
		}
		if len(r.Structure) == 0 {
			return nil, fmt.Errorf("%w: reference %s has no atoms", cmmn.ErrInvalidArgument, r.Name)
		}
		if _, ok := t.refs[r.Name]; ok {
			return nil, fmt.Errorf("%w: reference %s given twice", cmmn.ErrInvalidArgument, r.Name)
		}
		t.refs[r.Name] = r
	}
	return t, nil
}

// Reference hands out a reference by NtC name.
func (t *Table) Reference(name string) (*step.Reference, bool) {
	if t == nil {
		return nil, false
	}
	r, ok := t.refs[name]
	return r, ok
}

func (t *Table) Len() int { return len(t.refs) }

// Loaded lists the classes in the table, in the order of Names.
func (t *Table) Loaded() []string {
	var ret []string
	for _, n := range Names {
		if _, ok := t.refs[n]; ok {
			ret = append(ret, n)
		}
	}
	return ret
}

// fileFor finds <dir>/<name>.cif or its compressed version.
func fileFor(dir, name string) string {
	for _, ext := range []string{".cif", ".cif.gz"} {
		fname := filepath.Join(dir, name+ext)
		if _, err := os.Stat(fname); err == nil {
			return fname
		}
	}
	return ""
}

// column says where each metric lives in the averages table.
type column struct {
	name  string
	angle bool
	get   func(m *step.Metrics) *float64
}

var columns = []column{
	{"delta_1", true, func(m *step.Metrics) *float64 { return &m.Delta1 }},
	{"epsilon_1", true, func(m *step.Metrics) *float64 { return &m.Epsilon1 }},
	{"zeta_1", true, func(m *step.Metrics) *float64 { return &m.Zeta1 }},
	{"alpha_2", true, func(m *step.Metrics) *float64 { return &m.Alpha2 }},
	{"beta_2", true, func(m *step.Metrics) *float64 { return &m.Beta2 }},
	{"gamma_2", true, func(m *step.Metrics) *float64 { return &m.Gamma2 }},
	{"delta_2", true, func(m *step.Metrics) *float64 { return &m.Delta2 }},
	{"chi_1", true, func(m *step.Metrics) *float64 { return &m.Chi1 }},
	{"chi_2", true, func(m *step.Metrics) *float64 { return &m.Chi2 }},
	{"cc", false, func(m *step.Metrics) *float64 { return &m.CC }},
	{"nn", false, func(m *step.Metrics) *float64 { return &m.NN }},
	{"mu", true, func(m *step.Metrics) *float64 { return &m.Mu }},
}

// readAverages reads the averages file. Angles come back in radians.
func readAverages(fname string) (map[string]step.Metrics, error) {
	md, err := pdb.ReadMmcif(fname, func(mr *mmcif.MmcifReader) {
		mr.AddTable([]string{averagesTable + "."})
		mr.SetModelMax(0)
	})
	if err != nil {
		return nil, err
	}
	tbl, ok := md.Tables[averagesTable]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s table", cmmn.ErrBadData, fname, averagesTable)
	}
	ret := make(map[string]step.Metrics, len(tbl.Vals))
	for row := range tbl.Vals {
		name, err := tbl.Str(row, "ntc")
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", cmmn.ErrBadData, fname, err)
		}
		if !IsName(name) {
			return nil, fmt.Errorf("%w: %s: %q is not an NtC", cmmn.ErrBadData, fname, name)
		}
		var m step.Metrics
		for _, c := range columns {
			x, err := tbl.Float(row, c.name)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %s: %v", cmmn.ErrBadData, fname, name, err)
			}
			if c.angle {
				x = geom.WrapAngle(x * geom.Deg2Rad)
			}
			*c.get(&m) = x
		}
		ret[name] = m
	}
	return ret, nil
}

// Load reads the references in dir. Each class is a file <NtC>.cif,
// maybe compressed, holding one step. Classes without a file are left
// out. If AveragesFile is there, it gives the metrics for each class.
// Otherwise the metrics are worked out from the reference structure.
func Load(dir string) (*Table, error) {
	avg, err := readAverages(filepath.Join(dir, AveragesFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("no averages file, metrics from structures", slog.String("dir", dir))
	case err != nil:
		return nil, err
	}

	var refs []*step.Reference
	for _, name := range Names {
		fname := fileFor(dir, name)
		if fname == "" {
			continue
		}
		s, err := pdb.ReadStructure(fname)
		if err != nil {
			return nil, err
		}
		if _, err := step.StructureIsStep(s); err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		m, ok := avg[name]
		if !ok {
			if m, err = step.CalculateStepMetrics(s); err != nil {
				return nil, fmt.Errorf("%s: %w", fname, err)
			}
		}
		refs = append(refs, &step.Reference{Name: name, Structure: s, Metrics: m})
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: no reference conformers in %s", cmmn.ErrInvalidArgument, dir)
	}
	slog.Debug("loaded references", slog.String("dir", dir), slog.Int("n", len(refs)),
		slog.Int("averages", len(avg)))
	return New(refs...)
}
