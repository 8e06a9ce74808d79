package main

import (
	"github.com/spf13/cobra"
)

var checkerCmd = &cobra.Command{
	Use:   "checker",
	Short: "Run the Manuscript Checker app in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp("checker")
	},
}
