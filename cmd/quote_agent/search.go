package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/renovation-quoter/internal/observability"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Find past quotes similar to a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

var (
	searchTopK int
	searchJSON bool
)

func init() {
	searchCmd.Flags().IntVar(&searchTopK, "top-k", 0, "Number of matches (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print matches as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchTopK < 0 {
		return fmt.Errorf("--top-k must be positive")
	}

	svc, _, _, err := openServices(cmd.Context(), cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	query := strings.Join(args, " ")
	matches, err := svc.Search(cmd.Context(), query, searchTopK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSimilarQuotes(query, matches)
	return nil
}
