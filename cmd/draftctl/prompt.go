package main

import (
	"fmt"
	"io"

	"mailreply-be/pkg/replyprompt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var promptKind string

var promptCmd = &cobra.Command{
	Use:   "prompt <document.yaml>",
	Short: "Render the prompt a document would send to the model",
	Long: `Render the prompt a document would send to the model, without calling it.

Kinds:
  reply      the generate prompt (default)
  translate  the customer-email translation prompt
  english    the English rendering prompt for the document's reply`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := loadDocument(args[0])
		if err != nil {
			return err
		}
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		var p replyprompt.Prompt
		switch promptKind {
		case "reply":
			p = replyprompt.ReplyPrompt(replyprompt.ReplyInputFromDocument(doc), c)
		case "translate":
			p = replyprompt.TranslatePrompt(doc.CustomerText)
		case "english":
			if doc.Reply == "" {
				return fmt.Errorf("document %s has no reply to translate", args[0])
			}
			p = replyprompt.EnglishPrompt(doc.Reply)
		default:
			return fmt.Errorf("unknown prompt kind %q (want reply, translate or english)", promptKind)
		}

		printPrompt(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	promptCmd.Flags().StringVarP(&promptKind, "kind", "k", "reply", "prompt kind: reply, translate or english")
}

func printPrompt(w io.Writer, p replyprompt.Prompt) {
	heading := color.New(color.FgYellow, color.Bold)
	for _, m := range p.Messages() {
		heading.Fprintf(w, "── %s ──\n", m.Role)
		fmt.Fprintln(w, m.Content)
		fmt.Fprintln(w)
	}
	if p.Schema != nil {
		heading.Fprintf(w, "── schema: %s ──\n", p.Schema.Name)
		_ = writeOutput(w, "json", p.Schema.Schema)
	}
}
