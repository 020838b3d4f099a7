// cmd/zonenav/validate.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newValidateCmd checks a config file and exits non-zero on failure.
// Meant for pre-deployment checks after recalibrating the board.
func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			if _, err := loadConfig(cfgPath); err != nil {
				return err
			}
			fmt.Printf("%s: ok\n", cfgPath)
			return nil
		},
	}
}
