package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait <pattern>",
	Short: "Wait until a pattern arrives on the receive stream",
	Long: `Consume received bytes until <pattern> has arrived. The timeout is the
longest time allowed without progress on a partial match.

Exits non-zero on timeout.`,
	Args: cobra.ExactArgs(1),
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
}

func runWait(cmd *cobra.Command, args []string) error {
	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	if err := dev.Port().WaitForString([]byte(args[0]), timeout); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", args[0])
	return nil
}
