package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/frahmantamala/earned-wage-access/internal/bankdirectory"
	"github.com/frahmantamala/earned-wage-access/internal/engine"
	"github.com/frahmantamala/earned-wage-access/pkg/logger"
)

var quoteAmount int64

var quoteCmd = &cobra.Command{
	Use:   "quote [employee-id]",
	Short: "Show the limit and fee breakdown for a seeded employee",
	Long:  `Compute the available limit and, with --amount, the fee and total deduction of a withdrawal. Nothing is changed.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		lg := logger.LoggerWrapper()
		eng, err := engine.New(cfg, bankdirectory.NewStatic(nil, 0, lg), lg)
		if err != nil {
			log.Fatalf("failed to initialize engine: %v", err)
		}
		defer eng.Shutdown()

		var out interface{}
		if quoteAmount > 0 {
			out, err = eng.Quote(args[0], quoteAmount)
		} else {
			out, err = eng.Profile(args[0])
		}
		if err != nil {
			log.Fatalf("quote failed: %v", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	quoteCmd.Flags().Int64Var(&quoteAmount, "amount", 0, "withdrawal amount to quote")
}
