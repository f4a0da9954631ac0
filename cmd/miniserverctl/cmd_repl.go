package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Progenitus1/rust-sql-miniserver/txn"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "open an interactive prompt, running each line as a query",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveDataDir()
		if err != nil {
			return err
		}
		executor := txn.NewExecutor(dir)

		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("> ")
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				fmt.Print("> ")
				continue
			}
			if line == "exit" || line == "quit" {
				return nil
			}
			if err := printResponse(runQuery(executor, line)); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			fmt.Print("> ")
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
