package stepgeom

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/step"
)

// metricHdr is the heading for each step's metrics.
const metricHdr = `"step","delta_1","epsilon_1","zeta_1","alpha_2","beta_2","gamma_2","delta_2","chi_1","chi_2","cc","nn","mu"`

// WriteMetrics writes one line per step with its metrics. Angles are
// in degrees. Steps that are broken, for example with a missing atom,
// are logged and left out. The number written is returned.
func WriteMetrics(w io.Writer, steps []cmmn.Structure) (int, error) {
	if _, err := fmt.Fprintln(w, metricHdr); err != nil {
		return 0, err
	}
	n := 0
	for _, s := range steps {
		m, err := step.CalculateStepMetrics(s)
		if err != nil {
			slog.Warn("skipping step", slog.String("step", StepLabel(s)), slog.Any("error", err))
			continue
		}
		d := m.Degrees()
		_, err = fmt.Fprintf(w, "%q,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.2f,%.3f,%.3f,%.2f\n",
			StepLabel(s), d.Delta1, d.Epsilon1, d.Zeta1, d.Alpha2, d.Beta2, d.Gamma2, d.Delta2,
			d.Chi1, d.Chi2, d.CC, d.NN, d.Mu)
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
