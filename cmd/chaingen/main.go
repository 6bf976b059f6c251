// Command chaingen generates self-avoiding coarse-grained chains, and estimates
// the hydrodynamic properties of ensembles of them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rmera/chaingen"
	"github.com/rmera/chaingen/beads"
	"github.com/rmera/chaingen/internal/config"
	"github.com/rmera/chaingen/internal/textio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by all the subcommands.
type app struct {
	cfgPath string
	seed    int64
	verbose bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "chaingen",
		Short: "Generate self-avoiding coarse-grained chains",
		Long: `chaingen places chains of beads, each with its own radius, so that bonded
beads are at the bond length (by default, touching) and no two other beads overlap.

Bead radii are given as a list, e.g. "[1.9, 1.9, 4.5]", or derived from a protein
sequence, where folded regions are written between brackets, e.g. "MDEK[GFHLLVQ]SEE".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "chaingen.yaml", "YAML configuration file (defaults are used if missing)")
	root.PersistentFlags().Int64Var(&a.seed, "seed", 1, "seed for the random stream (overrides the configuration)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(a.generateCmd(), a.beadsCmd(), a.ensembleCmd(), a.validateCmd(), a.configCmd())
	return root
}

// setup loads the configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generator.Seed = a.seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg
	a.log, err = cfg.Logging.NewLogger(a.verbose)
	if err != nil {
		return err
	}
	a.log.Debug("configuration loaded", zap.String("path", a.cfgPath), zap.Any("config", cfg))
	return nil
}

// input returns the positional arguments joined, or, without them,
// everything in the command's standard input.
func input(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read standard input: %w", err)
	}
	return string(b), nil
}

// radii returns the steric radii from a sequence, if one is given,
// or from a size list. The beads are nil for size lists.
func radii(sequence, sizes string) ([]float64, *beads.Beads, error) {
	if sequence != "" {
		B := beads.Parse(sequence)
		if B.Len() == 0 {
			return nil, nil, fmt.Errorf("no residues in sequence %q", sequence)
		}
		return B.Steric, B, nil
	}
	s, err := textio.ParseSizes(sizes)
	return s, nil, err
}

// exitCode maps errors to the exit status of the command.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.Is(err, chaingen.ErrInvalidInput):
		return 2
	case errors.Is(err, chaingen.ErrUnsatisfiableGeometry):
		return 3
	}
	return 1
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(err))
}
