package main

import (
	"fmt"
	"os"

	"github.com/rmera/chaingen"
	"github.com/rmera/chaingen/internal/textio"
	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	var sizes, sequence, coords string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a chain against the bond and excluded volume rules",
		Long: `Read "x y z" lines (from --coords or the standard input) and check them, with the
radii from --sizes or --sequence, against the bond rule and overlap margin
in the configuration.`,
		Example: `  chaingen generate "[1, 2, 1]" | chaingen validate --sizes "[1, 2, 1]"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sizes == "" && sequence == "" {
				return fmt.Errorf("either --sizes or --sequence is needed")
			}
			r, _, err := radii(sequence, sizes)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if coords != "" {
				f, err := os.Open(coords)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			pts, err := textio.ReadChain(in)
			if err != nil {
				return err
			}
			c, err := chaingen.NewChain(pts, r)
			if err != nil {
				return err
			}
			g := a.cfg.Generator
			checker := chaingen.NewCollisionChecker(g.Rule(), g.BondTolerance, g.OverlapMargin)
			if err := checker.Validate(c); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "valid chain of %d beads\n", c.Len()); err != nil {
				return err
			}
			if d, pair := c.ClosestNonBonded(); pair[0] >= 0 {
				_, err = fmt.Fprintf(out, "closest non-bonded beads: %d and %d, %g apart (contact at %g)\n",
					pair[0], pair[1], d, r[pair[0]]+r[pair[1]])
			}
			return err
		},
	}
	cmd.Flags().StringVar(&sizes, "sizes", "", "radii of the beads")
	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "protein sequence to take the radii from")
	cmd.Flags().StringVar(&coords, "coords", "", "file with the coordinates (default: standard input)")
	return cmd
}
