// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfsum/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the store as YAML or JSON",
	Long: `Export writes every stored summary to stdout, or to --output, as a
YAML sequence or a JSON array.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	cmd.SilenceUsage = true
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	s := store.New(storeConfig().Path)

	var w io.Writer = cmd.OutOrStdout()
	if output != "" {
		f, cerr := os.Create(output)
		if cerr != nil {
			return fmt.Errorf("creating %s: %w", output, cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	switch format {
	case "yaml", "":
		return s.ExportYAML(w)
	case "json":
		return s.ExportJSON(w)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")

	rootCmd.AddCommand(exportCmd)
}
