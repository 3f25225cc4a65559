package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHandicapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handicap",
		Short: "Handicap index commands",
	}

	cmd.AddCommand(newHandicapGetCmd())
	cmd.AddCommand(newHandicapRecomputeCmd())
	cmd.AddCommand(newHandicapCalcCmd())

	return cmd
}

func newHandicapGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <player-id>",
		Short: "Show a player's handicap index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Handicap

			if err := client.Get(cmd.Context(), playerPath(args[0])+"/handicap", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newHandicapRecomputeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recompute <player-id>",
		Short: "Recompute a player's handicap from their stored rounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Post(cmd.Context(), playerPath(args[0])+"/handicap/recompute", nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newHandicapCalcCmd() *cobra.Command {
	var strokes, pars, slopes []int

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate an index from ad-hoc rounds without storing them",
		Example: `  handicapctl handicap calc --strokes 85,90 --pars 72,72
  handicapctl handicap calc --strokes 89,85,90 --pars 72,72,72 --slopes 121,113,130`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(strokes) != len(pars) {
				return fmt.Errorf("--strokes and --pars must have the same number of values")
			}

			req := map[string][]int{
				"strokes": strokes,
				"pars":    pars,
			}
			if cmd.Flags().Changed("slopes") {
				req["slopes"] = slopes
			}
			var result Calculation

			if err := client.Post(cmd.Context(), "/api/v1/handicap/calculate", req, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&strokes, "strokes", nil, "Strokes per round, comma separated (required)")
	cmd.Flags().IntSliceVar(&pars, "pars", nil, "Par per round, comma separated (required)")
	cmd.Flags().IntSliceVar(&slopes, "slopes", nil, "Slope rating per round, comma separated")
	_ = cmd.MarkFlagRequired("strokes")
	_ = cmd.MarkFlagRequired("pars")

	return cmd
}
