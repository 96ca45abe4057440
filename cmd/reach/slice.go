package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xonecas/reach/internal/reachability"
)

var sliceCmd = &cobra.Command{
	Use:   "slice <file> <line> <col>",
	Short: "Slice the data flow of the identifier at a position",
	Long: `Builds a data-flow slice from the identifier at line:col (both 1-indexed),
collects the statements within --depth hops and describes each of them.

Call arguments are sliced backwards ("how was it created?"), local
declarations forwards ("how is it modified?") unless --direction is set.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		line, col, err := position(args[1], args[2])
		if err != nil {
			return err
		}

		sc := cfg.Slice
		if cmd.Flags().Changed("depth") {
			sc.MaxDepth, _ = cmd.Flags().GetInt("depth")
		}
		if cmd.Flags().Changed("strategy") {
			sc.Strategy, _ = cmd.Flags().GetString("strategy")
		}
		if cmd.Flags().Changed("direction") {
			sc.Direction, _ = cmd.Flags().GetString("direction")
		}
		color := cfg.UI.Color
		if cmd.Flags().Changed("color") {
			color, _ = cmd.Flags().GetBool("color")
		}

		rep, err := reachability.NewHandler(sc).Invoke(cmd.Context(), args[0], line, col)
		if err != nil {
			return err
		}
		return rep.Render(os.Stdout, reachability.RenderOptions{Color: color, Theme: cfg.UI.SyntaxTheme})
	},
}

var questionCmd = &cobra.Command{
	Use:   "question <file> <line> <col>",
	Short: "Show the reachability question for the identifier at a position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		line, col, err := position(args[1], args[2])
		if err != nil {
			return err
		}
		q, err := reachability.Ask(cmd.Context(), args[0], line, col)
		if err != nil {
			return err
		}
		if text := q.Text(); text != "" {
			fmt.Println(text)
		}
		return nil
	},
}

func init() {
	sliceCmd.Flags().Int("depth", 0, "maximum number of hops from the root statement")
	sliceCmd.Flags().String("strategy", "", "hydration strategy: pattern or direct")
	sliceCmd.Flags().String("direction", "", "auto, forward or backward")
	sliceCmd.Flags().Bool("color", false, "colourize the report")

	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(questionCmd)
}

func position(lineArg, colArg string) (int, int, error) {
	line, err := strconv.Atoi(lineArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line %q: %w", lineArg, err)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid column %q: %w", colArg, err)
	}
	return line, col, nil
}
