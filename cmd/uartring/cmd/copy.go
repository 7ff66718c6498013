package cmd

import (
	"errors"
	"fmt"

	uartring "github.com/luhtfiimanal/go-uart-ring"
	"github.com/spf13/cobra"
)

var (
	copyCRLF bool
	copyMax  int
)

var copyCmd = &cobra.Command{
	Use:   "copy [pattern]",
	Short: "Print received bytes up to and including a pattern",
	Long: `Copy received bytes into a buffer of --max bytes until [pattern] arrives,
then print them. The default pattern is "\n"; --crlf selects "\r\n".

The timeout covers the whole copy. A buffer that fills up first is printed
and reported as an error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCopy,
}

func init() {
	copyCmd.Flags().BoolVar(&copyCRLF, "crlf", false, "stop at \\r\\n")
	copyCmd.Flags().IntVar(&copyMax, "max", 256, "destination buffer size, including the terminator")
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
	pattern := terminator(copyCRLF, "\n")
	if len(args) == 1 {
		pattern = []byte(args[0])
	}
	if err := checkMax(copyMax); err != nil {
		return err
	}

	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	dst := make([]byte, copyMax)
	n, err := dev.Port().CopyUntil(pattern, dst, timeout)
	if n > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%q\n", dst[:n])
	}
	if errors.Is(err, uartring.ErrBufferFull) {
		return fmt.Errorf("no %q within %d bytes: %w", pattern, copyMax-1, err)
	}
	return err
}
