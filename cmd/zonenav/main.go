// cmd/zonenav/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "zonenav",
		Short:         "Zone navigator: stripe-seeking robot control and its command bridge",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "config.yaml", "path to the configuration file")

	root.AddCommand(newRunCmd())
	root.AddCommand(newDriveCmd())
	root.AddCommand(newValidateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zonenav:", err)
		os.Exit(1)
	}
}
