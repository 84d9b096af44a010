// Package stepgeom is for command line interactions with the step
// geometry code. Each subcommand reads structures, cuts them into
// steps and writes what it found as csv.
package stepgeom

import (
	"fmt"
	"log"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrew-torda/stepgeom/pdb"
	"github.com/andrew-torda/stepgeom/pdb/cmmn"
	"github.com/andrew-torda/stepgeom/pdb/ntc"
)

const nReaderDflt = 3 // default number of reader goroutines

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stepgeom",
	Short: "Measure and classify dinucleotide steps in nucleic acid structures",
	Long: `Read mmCIF files, possibly compressed, and cut them into steps of two
neighbouring residues. Steps can be described by their torsions and
distances, compared to NtC reference conformers and checked for how
well they join up.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := readSettings(viper.GetString("config")); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		return setupLogging(viper.GetString("log-level"))
	},
}

// Execute adds the child commands to the root command and runs it.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "settings file (default is ./stepgeom.yaml if it is there)")
	pf.IntP("model", "m", 1, "read models up to this number, -1 for all")
	pf.StringSliceP("chain", "c", nil, "only read these chains, label or author names")
	pf.String("log-level", "warn", "debug, info, warn or error")
	pf.StringP("out", "o", "-", "output file name, - for standard output")
	pf.StringP("refs", "r", "", "directory with the NtC reference conformers")
	pf.IntP("jobs", "j", nReaderDflt, "number of files to read at once")
	for _, name := range []string{"config", "model", "chain", "log-level", "out", "refs", "jobs"} {
		viper.BindPFlag(name, pf.Lookup(name))
	}
}

// fresult is what one reader found in one file.
type fresult struct {
	steps []cmmn.Structure
	err   error
}

// readFiles takes indices into fnames from a channel and reads those
// files into steps.
func readFiles(c *Config, fnames []string, ch <-chan int, res []fresult, wg *sync.WaitGroup) {
	defer wg.Done()
	for i := range ch {
		s, err := pdb.ReadSteps(fnames[i], c.Model, c.Chains)
		if err == nil {
			slog.Info("read", slog.String("file", fnames[i]), slog.Int("steps", len(s)))
		}
		res[i] = fresult{s, err}
	}
}

// readAll reads each file and cuts it into steps. Files are read by
// c.Jobs goroutines, but the steps come back in the order of fnames.
func readAll(c *Config, fnames []string) ([]cmmn.Structure, error) {
	nReader := min(max(c.Jobs, 1), len(fnames))
	ch := make(chan int, len(fnames))
	for i := range fnames {
		ch <- i
	}
	close(ch)
	res := make([]fresult, len(fnames))
	var wg sync.WaitGroup
	for i := 0; i < nReader; i++ {
		wg.Add(1)
		go readFiles(c, fnames, ch, res, &wg)
	}
	wg.Wait()

	var steps []cmmn.Structure
	for _, r := range res {
		if r.err != nil {
			return nil, r.err
		}
		steps = append(steps, r.steps...)
	}
	return steps, nil
}

// loadRefs reads the reference table named in the settings.
func loadRefs(c *Config) (*ntc.Table, error) {
	if c.Refs == "" {
		return nil, fmt.Errorf("%w: no reference directory, use --refs", cmmn.ErrInvalidArgument)
	}
	return ntc.Load(c.Refs)
}
