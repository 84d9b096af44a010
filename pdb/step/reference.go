package step

import (
	"fmt"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
)

// Reference is one canonical step conformer. Structure is a step that
// is used as a superposition target. Metrics are the averages for the
// class, not necessarily the metrics of Structure.
type Reference struct {
	Name      string
	Structure cmmn.Structure
	Metrics   Metrics
}

// ReferenceTable hands out references by name. The references are
// shared and must not be changed.
type ReferenceTable interface {
	Reference(name string) (*Reference, bool)
}

func lookupRef(table ReferenceTable, name string) (*Reference, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: no reference table", cmmn.ErrInvalidArgument)
	}
	ref, ok := table.Reference(name)
	if !ok {
		return nil, fmt.Errorf("%w: no reference called %q", cmmn.ErrInvalidArgument, name)
	}
	return ref, nil
}
