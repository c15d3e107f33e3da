package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pdx",
	Short: "Pdx is a toolkit for Paradox scripting data files.",
	Long:  "Pdx is a toolkit for Paradox scripting data files. It parses the brace-delimited key/value script format into a navigable document and ships a few consumers of it: a ship stat builder, a naval battle simulator and a brace checker.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Pdx",
	Long:  `All software has versions. This is Pdx's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Pdx v0.1 -- HEAD")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(checkCmd)
}
