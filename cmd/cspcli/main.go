// Command cspcli is a thin consumer of pkg/csp: it loads a declarative
// problem file and reports consistency/propagation/structure facts about
// it. It never searches for a solution — spec.md's Non-goals exclude a
// backtracking search driver, so this stays a query tool over the §6
// library surface (metrics, EnforceGACAll, graphs, Rel), the same role
// gitrdm-gokando's cmd/example plays for its own library.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gitrdm/gokando-csp/pkg/config"
	"github.com/gitrdm/gokando-csp/pkg/csp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "cspcli",
		Short:         "Inspect and propagate finite-domain constraint problems",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				csp.Log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log GAC trace events")

	root.AddCommand(newCheckCmd(), newGACCmd(), newGraphCmd(), newRelCmd())
	return root
}

func loadProblem(path string) (*csp.CSP[string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return config.LoadCSP(f)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <problem.yaml>",
		Short: "Print n/e/d/r/density and normalization for a problem file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadProblem(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("n=%d e=%d d=%d r=%d density=%.4f normalized=%t\n",
				c.N(), c.E(), c.D(), c.R(), c.Density(), c.IsNormalized())
			return nil
		},
	}
}

func newGACCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gac <problem.yaml>",
		Short: "Enforce generalized arc consistency and print resulting domains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadProblem(args[0])
			if err != nil {
				return err
			}
			if err := csp.EnforceGACAll(c, 0); err != nil {
				return err
			}
			for _, v := range c.Variables() {
				fmt.Println(v)
			}
			return nil
		},
	}
}

func newGraphCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "graph <problem.yaml>",
		Short: "Print the primal, dual, or micro-structure graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadProblem(args[0])
			if err != nil {
				return err
			}

			var g *csp.Graph
			switch kind {
			case "primal":
				g = c.PrimalGraph()
			case "dual":
				g = c.DualGraph()
			case "micro":
				g = c.MicroStructureGraph()
			default:
				return fmt.Errorf("unknown graph kind %q (want primal, dual, or micro)", kind)
			}

			for _, n := range g.Nodes() {
				fmt.Printf("%s: %v\n", n, g.Neighbors(n))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "primal", "graph kind: primal, dual, or micro")
	return cmd
}

func newRelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rel <problem.yaml> <constraint-label>",
		Short: "Print a constraint's currently-active satisfying tuples",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadProblem(args[0])
			if err != nil {
				return err
			}
			label := args[1]
			for _, con := range c.Constraints() {
				if con.Label() != label {
					continue
				}
				for _, tuple := range con.Rel() {
					fmt.Println(tuple)
				}
				fmt.Printf("tightness=%.4f looseness=%.4f entailed=%t disentailed=%t\n",
					con.Tightness(), con.Looseness(), con.IsEntailed(), con.IsDisentailed())
				return nil
			}
			return fmt.Errorf("no constraint labeled %q", label)
		},
	}
}
