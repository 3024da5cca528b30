package main

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/milosgajdos/matrix"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	systems "github.com/milosgajdos/go-systems"
	"github.com/milosgajdos/go-systems/analysis"
	"github.com/milosgajdos/go-systems/discretize"
)

var (
	systemFile string
	dt         float64
	algorithm  string
	from       float64
	to         float64
	steps      int
	plotFile   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "c2d",
		Short: "continuous to discrete affine system conversion",
	}

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "discretize a system definition",
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVar(&systemFile, "system", "", "system definition file (yaml)")
	convertCmd.Flags().Float64Var(&dt, "dt", 0.1, "sampling period")
	convertCmd.Flags().StringVar(&algorithm, "algorithm", "exact", "discretization algorithm (exact|euler)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare discretization algorithms over a range of sampling periods",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&systemFile, "system", "", "system definition file (yaml)")
	sweepCmd.Flags().Float64Var(&from, "from", 1e-6, "smallest sampling period")
	sweepCmd.Flags().Float64Var(&to, "to", 1.0, "largest sampling period")
	sweepCmd.Flags().IntVar(&steps, "steps", 25, "number of sampling periods")
	sweepCmd.Flags().StringVar(&plotFile, "plot", "", "save the sweep plot to this file (png)")

	variantsCmd := &cobra.Command{
		Use:   "variants",
		Short: "list the registered system variant pairs",
		RunE:  listVariants,
	}

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(variantsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem()
	if err != nil {
		return err
	}

	alg, err := parseAlgorithm(algorithm)
	if err != nil {
		return err
	}

	dsys, err := discretize.Discretize(sys, dt, discretize.WithAlgorithm(alg))
	if err != nil {
		return err
	}

	fmt.Printf("%T -> %T (dt=%g, algorithm=%s)\n", sys, dsys, dt, alg)

	aff, ok := dsys.(systems.AffineSystem)
	if !ok {
		return nil
	}
	for _, f := range aff.DynamicsFields() {
		fmt.Printf("\n%s:\n%v\n", f, matrix.Format(aff.Dynamics(f)))
	}
	for _, f := range aff.SetFields() {
		fmt.Printf("\n%s: %v\n", f, aff.Set(f))
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sys, err := loadSystem()
	if err != nil {
		return err
	}

	periods, err := analysis.Periods(from, to, steps)
	if err != nil {
		return err
	}

	dist, err := analysis.Convergence(sys, periods)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tDISTANCE")
	for i := range periods {
		fmt.Fprintf(w, "%.6e\t%.6e\n", periods[i], dist[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// distances span several orders of magnitude: chart the log
	data := make([]float64, len(dist))
	for i, d := range dist {
		data[i] = math.Log10(d + 1e-300)
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("log10 distance between exact and euler dynamics"),
	)
	fmt.Println(graph)

	if plotFile != "" {
		plt, err := analysis.NewConvergencePlot(periods, dist)
		if err != nil {
			return err
		}
		if err := plt.Save(10*vg.Inch, 5*vg.Inch, plotFile); err != nil {
			return err
		}
		fmt.Printf("saved plot to %s\n", plotFile)
	}

	return nil
}

func listVariants(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONTINUOUS\tDISCRETE")
	for _, p := range discretize.DefaultRegistry.Pairs() {
		fmt.Fprintf(w, "%s\t%s\n", p.Continuous, p.Discrete)
	}

	return w.Flush()
}

func loadSystem() (systems.ContinuousSystem, error) {
	if systemFile == "" {
		return nil, fmt.Errorf("no system definition given: use --system")
	}

	cfg, err := LoadConfig(systemFile)
	if err != nil {
		return nil, err
	}

	return cfg.System()
}

func parseAlgorithm(name string) (discretize.Algorithm, error) {
	switch strings.ToLower(name) {
	case "exact":
		return discretize.Exact{}, nil
	case "euler":
		return discretize.Euler{}, nil
	}

	return nil, fmt.Errorf("unknown algorithm: %s", name)
}
