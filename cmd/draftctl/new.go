package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"mailreply-be/pkg/blocks"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/draft"

	"github.com/spf13/cobra"
)

var (
	newBlocks       []string
	newPresets      []string
	newTone         string
	newLength       string
	newCustomerText string
	newNotes        string
	newPolicy       string
	newFile         string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Scaffold a reply document",
	Long: `Scaffold a reply document with the given blocks, optionally filled from presets.

Presets are given as type=index[,index...]; later presets win on shared fields.

Examples:
  draftctl new -b breakfast -b parking -p breakfast=1 -p parking=0
  draftctl new -t "Do you have parking?" --tone light -f doc.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		policy, err := draft.ParseAddPolicy(newPolicy)
		if err != nil {
			return err
		}
		presets, err := parsePresetFlags(newPresets)
		if err != nil {
			return err
		}

		doc := draft.New()
		doc = draft.Reduce(doc, draft.SetCustomerText{Text: newCustomerText})
		doc = draft.Reduce(doc, draft.SetNotes{Notes: newNotes})

		tone := catalog.Tone(newTone)
		if !tone.Valid() {
			return fmt.Errorf("unknown tone %q", newTone)
		}
		doc = draft.Reduce(doc, draft.SetTone{Tone: tone})

		if newLength != "" {
			length := catalog.Length(newLength)
			if !length.Valid() {
				return fmt.Errorf("unknown length %q", newLength)
			}
			doc = draft.Reduce(doc, draft.SetLength{Length: length})
		}

		for _, name := range newBlocks {
			tpl, ok := c.Template(catalog.BlockType(name))
			if !ok {
				return fmt.Errorf("unknown block type %q", name)
			}
			doc = draft.Reduce(doc, draft.AddBlock{Template: tpl, Policy: policy})
		}

		for t, selected := range presets {
			if !c.HasType(t) {
				return fmt.Errorf("preset for unknown block type %q", t)
			}
			for _, b := range doc.InfoBlocks {
				if b.Type != t {
					continue
				}
				doc = draft.Reduce(doc, draft.EditBlock{
					ID:   b.Id,
					Edit: blocks.ApplyPresetsEdit{Presets: c.Presets(t), Selected: selected},
				})
			}
		}

		if newFile != "" {
			if err := saveDocument(newFile, doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", newFile)
			return nil
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, doc)
	},
}

func init() {
	newCmd.Flags().StringArrayVarP(&newBlocks, "block", "b", nil, "block type to add (repeatable)")
	newCmd.Flags().StringArrayVarP(&newPresets, "preset", "p", nil, "presets to apply as type=index[,index]")
	newCmd.Flags().StringVar(&newTone, "tone", string(catalog.TonePolite), "reply tone: polite, light or casual")
	newCmd.Flags().StringVar(&newLength, "length", "", "reply length: short, medium or long")
	newCmd.Flags().StringVarP(&newCustomerText, "text", "t", "", "customer email text")
	newCmd.Flags().StringVar(&newNotes, "notes", "", "operator notes")
	newCmd.Flags().StringVar(&newPolicy, "policy", os.Getenv("BLOCK_ADD_POLICY"), "block add policy: toggle, unique or multi")
	newCmd.Flags().StringVarP(&newFile, "file", "f", "", "write the document to this file instead of stdout")
}

func parsePresetFlags(values []string) (map[catalog.BlockType][]int, error) {
	out := make(map[catalog.BlockType][]int)
	for _, v := range values {
		name, list, ok := strings.Cut(v, "=")
		if !ok || name == "" || list == "" {
			return nil, fmt.Errorf("invalid preset %q (want type=index[,index])", v)
		}
		for _, s := range strings.Split(list, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("invalid preset index in %q: %w", v, err)
			}
			out[catalog.BlockType(name)] = append(out[catalog.BlockType(name)], idx)
		}
	}
	return out, nil
}
