package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rmera/chaingen/beads"
	"github.com/rmera/chaingen/internal/textio"
	"github.com/spf13/cobra"
)

func (a *app) beadsCmd() *cobra.Command {
	var table bool
	cmd := &cobra.Command{
		Use:   "beads [sequence]",
		Short: "Print the bead radii for a protein sequence",
		Long: `Translate a protein sequence (from the arguments or the standard input) into beads.
Each residue of a disordered region is a bead, and each folded region, written between
brackets, is a single bead. The steric radii are printed as a list that the generate
command accepts.`,
		Example: `  chaingen beads "MDEK[GFHLLVQ]SEE"
  chaingen beads --table < sequence.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := input(cmd, args)
			if err != nil {
				return err
			}
			B := beads.Parse(src)
			out := cmd.OutOrStdout()
			if !table {
				_, err := fmt.Fprintln(out, textio.FormatSizes(B.Steric))
				return err
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\ttype\tsteric\thydrodynamic")
			for i := 0; i < B.Len(); i++ {
				fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\n", i, B.Types[i], B.Steric[i], B.Hydrodynamic[i])
			}
			if err := w.Flush(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%d beads (%d ordered), total mass %.2f Da\n", B.Len(), B.Count(beads.Ordered), B.TotalMass)
			return err
		},
	}
	cmd.Flags().BoolVarP(&table, "table", "t", false, "print a table with all the bead properties and the total mass")
	return cmd
}
