package main

import (
	"fmt"
	"sort"
	"strings"

	"mailreply-be/pkg/catalog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List block types, presets, tones and lengths",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		heading := color.New(color.FgCyan, color.Bold)
		for _, tpl := range c.Templates() {
			heading.Fprintf(out, "%s %s", tpl.Icon, tpl.Label)
			fmt.Fprintf(out, " (%s)\n", tpl.Type)
			fmt.Fprintf(out, "  fields:  %s\n", strings.Join(tpl.DefaultFields, ", "))
			for i, p := range tpl.Presets {
				fmt.Fprintf(out, "  preset %d: %s %s\n", i, p.Label, presetSummary(p))
			}
		}

		heading.Fprintln(out, "tones")
		for _, t := range catalog.Tones() {
			fmt.Fprintf(out, "  %-7s %s\n", t, c.ToneGuide(t))
		}
		heading.Fprintln(out, "lengths")
		for _, l := range catalog.Lengths() {
			fmt.Fprintf(out, "  %-7s %s\n", l, c.LengthGuide(l))
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Print one block template with its presets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		tpl, ok := c.Template(catalog.BlockType(args[0]))
		if !ok {
			return fmt.Errorf("unknown block type %q", args[0])
		}
		return writeOutput(cmd.OutOrStdout(), outputFormat, tpl)
	},
}

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
}

func presetSummary(p catalog.PresetOption) string {
	keys := make([]string, 0, len(p.Values))
	for k := range p.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + p.Values[k]
	}
	return color.New(color.Faint).Sprint("[" + strings.Join(parts, ", ") + "]")
}
