// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfsum/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the summaries in the store",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()
	s := store.New(storeConfig().Path)

	records, err := s.Records()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(out, "No summaries in %s.\n", s.Path())
		return nil
	}

	full, _ := cmd.Flags().GetBool("full")
	for _, r := range records {
		summary := r.Summary
		if runes := []rune(summary); !full && len(runes) > 100 {
			summary = strings.TrimSpace(string(runes[:97])) + "..."
		}
		fmt.Fprintf(out, "%s\n  %s\n", color.CyanString(r.FileName), summary)
	}
	fmt.Fprintf(out, "\n%d summaries\n", len(records))
	return nil
}

func init() {
	listCmd.Flags().Bool("full", false, "print whole summaries instead of the first 100 characters")

	rootCmd.AddCommand(listCmd)
}
