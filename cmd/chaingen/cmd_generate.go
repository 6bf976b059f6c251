package main

import (
	"fmt"

	"github.com/rmera/chaingen"
	"github.com/rmera/chaingen/internal/textio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) generateCmd() *cobra.Command {
	var (
		count, offset int
		check         bool
		sequence      string
	)
	cmd := &cobra.Command{
		Use:   "generate [sizes]",
		Short: "Generate one chain",
		Long: `Generate one chain and print the position of each bead, one "x y z" line per
bead.

The radii are taken from the arguments, from --sequence, or from the standard input.
--offset and --count select a window of the list: beads offset to offset+count-1.`,
		Example: `  chaingen generate "[1, 1, 1]"
  chaingen generate --sequence "MDEK[GFHLLVQ]SEE" --check > chain.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src := ""
			if sequence == "" {
				var err error
				if src, err = input(cmd, args); err != nil {
					return err
				}
			}
			r, _, err := radii(sequence, src)
			if err != nil {
				return err
			}
			sizes, err := chaingen.NewSizeList(r)
			if err != nil {
				return err
			}
			if count < 0 {
				count = max(sizes.Len()-offset, 0)
			}
			B := chaingen.NewBuilder(a.cfg.Options(a.log))
			c, err := B.Generate(cmd.Context(), count, offset, sizes)
			if err != nil {
				return err
			}
			a.log.Info("chain generated",
				zap.Int("beads", c.Len()),
				zap.Int64("seed", a.cfg.Generator.Seed),
				zap.Any("stats", B.Stats()))
			if check {
				if err := B.Checker().Validate(c); err != nil {
					return fmt.Errorf("generated chain failed validation: %w", err)
				}
				d, pair := c.ClosestNonBonded()
				a.log.Info("chain validated", zap.Float64("closest", d), zap.Ints("pair", pair[:]))
			}
			return textio.WriteChain(cmd.OutOrStdout(), c)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", -1, "number of beads (default: all from the offset)")
	cmd.Flags().IntVar(&offset, "offset", 0, "index of the first radius to use")
	cmd.Flags().BoolVar(&check, "check", false, "validate the whole chain after generating it")
	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "protein sequence to take the radii from")
	return cmd
}
