package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"mailreply-be/pkg/client"
	"mailreply-be/pkg/session"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	serverURL      string
	draftTimeout   time.Duration
	draftTranslate bool
	draftWrite     bool
)

var draftCmd = &cobra.Command{
	Use:   "draft <document.yaml>",
	Short: "Generate a reply for a document through a running server",
	Long: `Generate a reply for a document by calling the reply endpoint of a running
server (cmd/rest). With --translate the customer email is translated first.
With --write the reply and its English rendering are saved back to the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		doc, err := loadDocument(path)
		if err != nil {
			return err
		}

		api := client.New(serverURL, draftTimeout)
		s := session.New(api, session.WithInitialDocument(doc))
		defer s.Close()

		ctx := cmd.Context()
		info := color.New(color.FgCyan)
		out := cmd.OutOrStdout()

		if draftTranslate {
			info.Fprintln(cmd.ErrOrStderr(), "translating customer email...")
			if err := s.Translate(ctx); err != nil {
				return requestError(cmd.ErrOrStderr(), "translate", err)
			}
			d := s.Document()
			color.New(color.FgGreen, color.Bold).Fprintf(out, "── translation (%s) ──\n", d.DetectedLanguage)
			fmt.Fprintln(out, d.TranslatedCustomerText)
			fmt.Fprintln(out)
		}

		info.Fprintln(cmd.ErrOrStderr(), "generating reply...")
		if err := s.Generate(ctx); err != nil {
			return requestError(cmd.ErrOrStderr(), "generate", err)
		}

		d := s.Document()
		color.New(color.FgGreen, color.Bold).Fprintln(out, "── reply ──")
		fmt.Fprintln(out, d.Reply)
		if d.EnglishTranslation != "" {
			fmt.Fprintln(out)
			color.New(color.FgGreen, color.Bold).Fprintln(out, "── english ──")
			fmt.Fprintln(out, d.EnglishTranslation)
		} else {
			color.New(color.FgYellow).Fprintln(cmd.ErrOrStderr(), "english translation unavailable")
		}

		if draftWrite {
			if err := saveDocument(path, d); err != nil {
				return err
			}
			info.Fprintf(cmd.ErrOrStderr(), "saved %s\n", path)
		}
		return nil
	},
}

// requestError lists the offending fields when the server rejected the
// document as invalid.
func requestError(stderr io.Writer, op string, err error) error {
	var apiErr *client.APIError
	if !client.IsStatus(err, http.StatusBadRequest) || !errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %w", op, err)
	}
	warn := color.New(color.FgYellow)
	for _, d := range apiErr.Details {
		warn.Fprintf(stderr, "  %s: %s\n", d.Field, d.Message)
	}
	return fmt.Errorf("%s: document rejected: %s", op, apiErr.Message)
}

func init() {
	defaultServer := os.Getenv("DRAFTCTL_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:3000"
	}
	draftCmd.Flags().StringVar(&serverURL, "server", defaultServer, "server URL")
	draftCmd.Flags().DurationVar(&draftTimeout, "timeout", 2*time.Minute, "request timeout")
	draftCmd.Flags().BoolVar(&draftTranslate, "translate", false, "translate the customer email first")
	draftCmd.Flags().BoolVarP(&draftWrite, "write", "w", false, "save the result back to the document file")
}
