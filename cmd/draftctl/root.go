package main

import (
	"github.com/spf13/cobra"
)

var (
	catalogFile  string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "draftctl",
	Short: "Work with hotel email reply drafts from the terminal",
	Long: `draftctl inspects the block catalog, scaffolds reply documents, renders
the prompts a document produces, and drafts replies through a running server.

Documents are YAML files with the same fields the browser form edits:
customerText, infoBlocks, notes, tone, length, reply and englishTranslation.

Examples:
  draftctl catalog                            # List block types and presets
  draftctl new -b breakfast -p breakfast=1    # Scaffold a document
  draftctl prompt doc.yaml                    # Show the reply prompt
  draftctl draft doc.yaml --translate -w      # Translate, generate, save`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&catalogFile, "catalog", "", "catalog YAML file (default: bundled catalog)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(draftCmd)
}
