package cmd

import (
	"fmt"
	"io"

	uartring "github.com/luhtfiimanal/go-uart-ring"
	"github.com/spf13/cobra"
)

var extractMax int

var extractCmd = &cobra.Command{
	Use:   "extract <start> <end> [text]",
	Short: "Print the text between two patterns",
	Long: `Print the bytes between the first <start> and the first <end> after it.
The text is read from the third argument or, if absent, from stdin. No
device is opened.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVar(&extractMax, "max", 256, "destination buffer size, including the terminator")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := checkMax(extractMax); err != nil {
		return err
	}
	var src []byte
	if len(args) == 3 {
		src = []byte(args[2])
	} else {
		var err error
		if src, err = io.ReadAll(cmd.InOrStdin()); err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	dst := make([]byte, extractMax)
	n, err := uartring.ExtractBetween([]byte(args[0]), []byte(args[1]), src, dst)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", dst[:n])
	return nil
}
