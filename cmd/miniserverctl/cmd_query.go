package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Progenitus1/rust-sql-miniserver/protocol"
	"github.com/Progenitus1/rust-sql-miniserver/txn"
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "run a single query against the data directory and print the JSON response",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_ = cmd.Help()
			return errors.New("need to specify a query string")
		}
		query := strings.Join(args, " ")

		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		executor := txn.NewExecutor(dir)

		resp := runQuery(executor, query)
		return printResponse(resp)
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(executor *txn.Executor, query string) protocol.QueryResponseData {
	start := time.Now()
	result, err := executor.Process(query)
	duration := time.Since(start).String()
	if err != nil {
		return protocol.FromError(err, duration)
	}
	return protocol.FromResult(result, duration)
}

func printResponse(resp protocol.QueryResponseData) error {
	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling response: %w", err)
	}
	fmt.Println(string(b))
	return nil
}
