package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/varviz3d/varviz3d/internal/significance"
)

func newDomainsCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:     "domains <accession>",
		Short:   "List domain and region annotations for a protein",
		Example: `  varviz3d domains P38398`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*cfgFile)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			ds, err := rt.svc.Domains(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, ds)
		},
	}
}

func newClassifyCmd() *cobra.Command {
	var tokens bool

	cmd := &cobra.Command{
		Use:   "classify <label>...",
		Short: "Classify a clinical-significance label",
		Long: `Classify a free-text description (default) or a list of
controlled-vocabulary tokens (--tokens) into one of:
pathogenic, benign, uncertain, predicted.`,
		Example: `  varviz3d classify "Pathogenic variant associated with disease"
  varviz3d classify --tokens Benign reviewed`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var class significance.Class
			if tokens {
				class = significance.ClassifyTokens(args)
			} else {
				class = significance.ClassifyText(strings.Join(args, " "))
			}
			cmd.Println(string(class))
			return nil
		},
	}

	cmd.Flags().BoolVar(&tokens, "tokens", false,
		"treat arguments as a structured significance token list")

	return cmd
}

func newResolveCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <gene-symbol>",
		Short:   "Resolve a gene symbol to its best UniProt accession",
		Example: `  varviz3d resolve BRCA1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*cfgFile)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			res, err := rt.svc.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func newRSIDCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:     "rsid <accession> <rsid>",
		Short:   "Locate a dbSNP rsID on the protein sequence",
		Example: `  varviz3d rsid P38398 rs80357498`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(*cfgFile)
			if err != nil {
				return err
			}
			defer rt.cleanup()

			res, err := rt.svc.FindRSID(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
