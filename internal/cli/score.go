package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

type scoreFlags struct {
	strokes int
	par     int
	slope   int
}

func (f *scoreFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.strokes, "strokes", 0, "Strokes taken (required)")
	cmd.Flags().IntVar(&f.par, "par", 0, "Course par (required)")
	cmd.Flags().IntVar(&f.slope, "slope", 0, "Slope rating, 55-155 (default 113)")
	_ = cmd.MarkFlagRequired("strokes")
	_ = cmd.MarkFlagRequired("par")
}

func (f *scoreFlags) body() map[string]int {
	return map[string]int{
		"strokes": f.strokes,
		"par":     f.par,
		"slope":   f.slope,
	}
}

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Record and correct rounds",
	}

	cmd.AddCommand(newScoreAddCmd())
	cmd.AddCommand(newScoreUpdateCmd())
	cmd.AddCommand(newScoreListCmd())
	cmd.AddCommand(newScoreClearCmd())

	return cmd
}

func newScoreAddCmd() *cobra.Command {
	var flags scoreFlags

	cmd := &cobra.Command{
		Use:   "add <player-id>",
		Short: "Record a round for a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Score

			if err := client.Post(cmd.Context(), playerPath(args[0])+"/scores", flags.body(), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newScoreUpdateCmd() *cobra.Command {
	var flags scoreFlags

	cmd := &cobra.Command{
		Use:   "update <player-id> <score-id>",
		Short: "Correct a recorded round",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Score

			path := playerPath(args[0]) + "/scores/" + url.PathEscape(args[1])
			if err := client.Put(cmd.Context(), path, flags.body(), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newScoreListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <player-id>",
		Short: "List a player's rounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ScoreList

			if err := client.Get(cmd.Context(), playerPath(args[0])+"/scores", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newScoreClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <player-id>",
		Short: "Delete all of a player's rounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Delete(cmd.Context(), playerPath(args[0])+"/scores", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
