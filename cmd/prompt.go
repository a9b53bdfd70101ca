package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt <text>...",
	Short: "Process prompts once and print the result items as JSON",
	Long: `Each argument is processed as a separate prompt, in order, against the
same session, so "load sales.csv" followed by "total sales?" works.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		for _, text := range args {
			items := a.processor.Process(cmd.Context(), text)
			out, err := sonic.ConfigDefault.MarshalIndent(items, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		}
		return nil
	},
}
