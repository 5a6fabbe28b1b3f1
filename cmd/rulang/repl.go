package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/JangRuBin2/rulang/host/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Rulang session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return repl.New(os.Stdout).Run()
	},
}
