package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/varviz3d/varviz3d/internal/service"
)

func newTracksCmd(cfgFile *string) *cobra.Command {
	var (
		window  int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "tracks <accession> [accession...]",
		Short: "Build per-residue variant tracks for one or more proteins",
		Example: `  varviz3d tracks P38398
  varviz3d tracks --window 25 P38398 P04637
  varviz3d tracks --workers 4 P38398 P04637 P00533`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*cfgFile)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			results := rt.svc.BuildTracksBatch(cmd.Context(), args, window, workers)
			return collectBatch(results, func(r service.WorkResult) error {
				return enc.Encode(r.Bundle)
			})
		},
	}

	cmd.Flags().IntVarP(&window, "window", "w", 0,
		"smoothing/binning window in residues (0 = config default; odd values bin symmetrically)")
	cmd.Flags().IntVar(&workers, "workers", 0,
		"concurrent fetches across accessions (0 = number of CPUs)")

	return cmd
}

// collectBatch surfaces the first per-accession failure; sequence lookups
// that failed abort the batch since their tracks are meaningless.
func collectBatch(results []service.WorkResult, fn func(service.WorkResult) error) error {
	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("build tracks for %s: %w", r.Accession, r.Err)
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}
