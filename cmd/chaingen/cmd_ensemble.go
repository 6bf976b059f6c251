package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/rmera/chaingen"
	"github.com/rmera/chaingen/histo"
	"github.com/rmera/chaingen/hydro"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ensembleReport is what the ensemble command prints. Lengths are in Å,
// the diffusion coefficient in m²/s and the mass in Da. RhError is nil
// when there are too few chains to estimate it.
type ensembleReport struct {
	ID          string      `json:"id"`
	Chains      int         `json:"chains"`
	Beads       int         `json:"beads"`
	Rh          float64     `json:"rh"`
	RhError     *float64    `json:"rh_error,omitempty"`
	Diffusion   float64     `json:"diffusion"`
	Temperature float64     `json:"temperature"`
	Viscosity   float64     `json:"viscosity"`
	Mass        float64     `json:"mass,omitempty"`
	RgMean      float64     `json:"rg_mean"`
	RgStd       float64     `json:"rg_std"`
	EndMean     float64     `json:"end_to_end_mean"`
	EndStd      float64     `json:"end_to_end_std"`
	EndToEnd    *histo.Data `json:"end_to_end"`
}

func (r *ensembleReport) write(w io.Writer) error {
	fmt.Fprintf(w, "Ensemble %s: %d chains of %d beads\n\n", r.ID, r.Chains, r.Beads)
	fmt.Fprintf(w, "Effective, diffusive hydrodynamic radius:\nR_h = %.4e [Ang]\n", r.Rh)
	if r.RhError != nil {
		fmt.Fprintf(w, "(sampling error about %.2f%%)\n", 100*(*r.RhError)/r.Rh)
	} else {
		fmt.Fprintf(w, "(too few chains to estimate the sampling error)\n")
	}
	fmt.Fprintf(w, "\nDiffusion coefficient at %g K, %g cP:\nD = %.4e [m^2/s]\n", r.Temperature, r.Viscosity, r.Diffusion)
	if r.Mass > 0 {
		fmt.Fprintf(w, "\nTotal mass:\nM = %.4e [Da]\n", r.Mass)
	}
	fmt.Fprintf(w, "\nRadius of gyration: %.3f ± %.3f [Ang]\n", r.RgMean, r.RgStd)
	fmt.Fprintf(w, "End-to-end distance: %.3f ± %.3f [Ang]\n\n", r.EndMean, r.EndStd)
	_, err := fmt.Fprintf(w, "End-to-end distance distribution:\n%s\n", r.EndToEnd)
	return err
}

func (a *app) ensembleCmd() *cobra.Command {
	var (
		sequence, sizes string
		n, workers      int
		bins            int
		temperature     float64
		viscosity       float64
		asJSON          bool
	)
	cmd := &cobra.Command{
		Use:   "ensemble",
		Short: "Generate an ensemble and estimate its hydrodynamic radius",
		Long: `Generate an ensemble of chains in parallel and report its hydrodynamic radius
(generalized Rotne-Prager-Yamakawa), with a sampling error estimated from
interleaved batches, the translational diffusion coefficient, the mean radius of
gyration and end-to-end distance, and the distribution of the latter.

With --sequence, disordered beads use their hydrodynamic radius for the mobility.
With --sizes, the given radii are used for both.`,
		Example: `  chaingen ensemble --sequence "MDEKGFHLLVQSEE" -n 500
  chaingen ensemble --sizes "[2, 2, 2, 2]" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (sequence == "") == (sizes == "") {
				return fmt.Errorf("exactly one of --sequence or --sizes is needed")
			}
			cfg := a.cfg
			if cmd.Flags().Changed("chains") {
				cfg.Ensemble.Size = n
			}
			if cmd.Flags().Changed("workers") {
				cfg.Ensemble.Workers = workers
			}
			if cmd.Flags().Changed("bins") {
				cfg.Ensemble.Bins = bins
			}
			if cmd.Flags().Changed("temperature") {
				cfg.Hydro.Temperature = temperature
			}
			if cmd.Flags().Changed("viscosity") {
				cfg.Hydro.Viscosity = viscosity
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			steric, B, err := radii(sequence, sizes)
			if err != nil {
				return err
			}
			if len(steric) == 0 {
				return fmt.Errorf("no beads given")
			}
			hr := steric
			report := &ensembleReport{Temperature: cfg.Hydro.Temperature, Viscosity: cfg.Hydro.Viscosity}
			if B != nil {
				hr = B.Hydrodynamic
				report.Mass = B.TotalMass
			}
			S, err := chaingen.NewSizeList(steric)
			if err != nil {
				return err
			}
			E, err := chaingen.GenerateEnsemble(cmd.Context(), cfg.Ensemble.Size, S.Len(), 0, S, cfg.Options(a.log), cfg.Ensemble.Workers)
			if err != nil {
				return err
			}
			if err := summarize(report, E, hr, cfg.Ensemble.Bins); err != nil {
				return err
			}
			a.log.Info("ensemble analyzed", zap.String("ensemble", E.ID), zap.Float64("rh", report.Rh))
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			return report.write(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&sequence, "sequence", "s", "", "protein sequence to take the beads from")
	cmd.Flags().StringVar(&sizes, "sizes", "", "bead radii")
	cmd.Flags().IntVarP(&n, "chains", "n", 100, "number of chains in the ensemble (overrides the configuration)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "goroutines generating chains, 0 for one per CPU (overrides the configuration)")
	cmd.Flags().IntVar(&bins, "bins", 20, "bins for the end-to-end distance histogram (overrides the configuration)")
	cmd.Flags().Float64Var(&temperature, "temperature", 293.15, "temperature in K (overrides the configuration)")
	cmd.Flags().Float64Var(&viscosity, "viscosity", 1, "solvent viscosity in cP (overrides the configuration)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

// summarize fills report with the hydrodynamic and shape properties of E, whose
// beads have the hydrodynamic radii hr.
func summarize(report *ensembleReport, E *chaingen.Ensemble, hr []float64, bins int) error {
	coords := E.Coords()
	rh, err := hydro.Rh(coords, hr)
	if err != nil {
		return err
	}
	sigma, err := hydro.RhSamplingError(coords, hr)
	if err != nil {
		return err
	}
	report.ID = E.ID
	report.Chains = E.Len()
	report.Beads = len(hr)
	report.Rh = rh
	if !math.IsNaN(sigma) {
		report.RhError = &sigma
	}
	report.Diffusion = hydro.DiffusionCoefficient(rh, report.Temperature, report.Viscosity)
	rg := make([]float64, len(coords))
	e2e := make([]float64, len(coords))
	for i, c := range coords {
		rg[i] = chaingen.RadiusOfGyration(c)
		e2e[i] = chaingen.EndToEnd(c)
	}
	report.RgMean, report.RgStd = meanStd(rg)
	report.EndMean, report.EndStd = meanStd(e2e)
	lo, hi := floats.Min(e2e), floats.Max(e2e)
	if !(hi > lo) {
		hi = lo + 1
	}
	report.EndToEnd = histo.NewData(histo.EvenDividers(lo, hi, bins), e2e)
	report.EndToEnd.Normalize()
	return nil
}

// meanStd is stat.MeanStdDev, with a zero deviation for a single value.
func meanStd(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}
