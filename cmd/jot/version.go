package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jot"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Mostra a versão do jot",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jot versão %s\n", strings.TrimSpace(jot.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
