// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfsum/internal/index"
	"github.com/pdiddy/pdfsum/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored summaries",
	Long: `Search finds stored summaries whose file name or text contains the
query. The SQLite index is brought up to date with the store first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()
	sc := storeConfig()

	records, err := store.New(sc.Path).Records()
	if err != nil {
		return err
	}

	idx, err := index.Open(sc.IndexPath, logger)
	if err != nil {
		return err
	}
	defer idx.Close()

	if _, err := idx.Sync(cmd.Context(), records); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := idx.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s\n  %s\n", color.CyanString(e.FileName), e.Summary)
	}
	fmt.Fprintf(out, "\n%d results\n", len(entries))
	return nil
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
