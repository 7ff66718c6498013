package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var sendCRLF bool

var sendCmd = &cobra.Command{
	Use:   "send <text>...",
	Short: "Queue text for transmission and wait until it is sent",
	Long: `Write the arguments, joined by spaces, to the transmit ring and wait until
the transmit interrupt has taken every byte.

Examples:
  uartring send -d /dev/ttyACM0 --crlf AT+GMR`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().BoolVar(&sendCRLF, "crlf", false, "append \\r\\n")
	rootCmd.AddCommand(sendCmd)
}

func runSend(cmd *cobra.Command, args []string) error {
	dev, err := openDevice()
	if err != nil {
		return err
	}
	defer dev.Close()

	text := strings.Join(args, " ")
	if sendCRLF {
		text += "\r\n"
	}
	port := dev.Port()
	if err := port.WriteString(text); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if err := port.Drain(timeout); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "sent %d bytes\n", len(text))
	}
	return nil
}
