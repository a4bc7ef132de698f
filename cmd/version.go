package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionコマンド
func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("oidp %s (revision %s)\n", Version, Revision)
		},
	}
}
