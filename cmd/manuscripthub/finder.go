package main

import (
	"github.com/spf13/cobra"
)

var finderCmd = &cobra.Command{
	Use:   "finder",
	Short: "Run the Journal Finder app in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp("finder")
	},
}
