package stepgeom

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrew-torda/stepgeom/pdb/ntc"
)

// metricsCmd writes the torsions and distances of each step.
var metricsCmd = &cobra.Command{
	Use:     "metrics file.cif [file2.cif ...]",
	Short:   "Write the metrics of every step",
	Args:    cobra.MinimumNArgs(1),
	Aliases: []string{"torsions"},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := NewConfig()
		if err != nil {
			return err
		}
		steps, err := readAll(&c, args)
		if err != nil {
			return err
		}
		return writeOut(c.Out, func(w io.Writer) error {
			n, err := WriteMetrics(w, steps)
			slog.Info("metrics", slog.Int("steps", len(steps)), slog.Int("written", n))
			return err
		})
	},
}

// similarCmd compares each step to the reference conformers.
var similarCmd = &cobra.Command{
	Use:     "similarity file.cif [file2.cif ...]",
	Short:   "Compare every step to the NtC reference conformers",
	Args:    cobra.MinimumNArgs(1),
	Aliases: []string{"sim", "classify"},
	Long: `For each step and each reference, write the RMSD after superposing the
extended backbones and the distance between their metrics. With --best,
only the reference with the smallest distance is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := NewConfig()
		if err != nil {
			return err
		}
		g, _, err := grid(&c, args)
		if err != nil {
			return err
		}
		return writeOut(c.Out, func(w io.Writer) error {
			return WriteSimilarity(w, g, c.Best)
		})
	},
}

// connectCmd checks how neighbouring steps join up.
var connectCmd = &cobra.Command{
	Use:   "connect file.cif [file2.cif ...]",
	Short: "Check how well neighbouring steps join up under their closest NtCs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := NewConfig()
		if err != nil {
			return err
		}
		g, tbl, err := grid(&c, args)
		if err != nil {
			return err
		}
		return writeOut(c.Out, func(w io.Writer) error {
			n, err := WriteConnectivity(w, g, tbl)
			slog.Info("connectivity", slog.Int("pairs", n))
			return err
		})
	},
}

// grid reads the references and the structures and measures one
// against the other.
func grid(c *Config, fnames []string) (*Grid, *ntc.Table, error) {
	tbl, err := loadRefs(c)
	if err != nil {
		return nil, nil, err
	}
	steps, err := readAll(c, fnames)
	if err != nil {
		return nil, nil, err
	}
	g, err := NewGrid(steps, tbl)
	return g, tbl, err
}

func init() {
	similarCmd.Flags().BoolP("best", "b", false, "only write the closest reference for each step")
	viper.BindPFlag("best", similarCmd.Flags().Lookup("best"))

	rootCmd.AddCommand(metricsCmd, similarCmd, connectCmd)
}
