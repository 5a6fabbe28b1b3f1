package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	hostrouter "github.com/JangRuBin2/rulang/host/router"
	"github.com/JangRuBin2/rulang/runtime/eval"
)

var checkRoutes bool

func init() {
	checkCmd.Flags().BoolVar(&checkRoutes, "routes", false, "print the registered endpoint table instead of just a pass/fail result")
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Parse and compile a Rulang program without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		program, machines, err := compile(string(source))
		if err != nil {
			return err
		}
		fmt.Printf("ok: %d statement(s), %d state machine(s)\n", len(program.Statements), len(machines))

		if !checkRoutes {
			return nil
		}

		rootScope := eval.NewRootScope()
		dispatcher := hostrouter.New(rootScope, nil, nil)
		ev := eval.New(dispatcher, func(string) {})
		dispatcher.SetEvaluator(ev)
		if err := ev.Run(program, machines, rootScope); err != nil {
			return err
		}
		r, err := dispatcher.Build()
		if err != nil {
			return err
		}
		fmt.Print(r.RouteList())
		return nil
	},
}
