package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/draft"

	"gopkg.in/yaml.v3"
)

// writeOutput encodes data as YAML or JSON.
func writeOutput(w io.Writer, format string, data any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format %q (want yaml or json)", format)
	}
}

func loadDocument(path string) (draft.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return draft.Document{}, fmt.Errorf("read document: %w", err)
	}

	doc := draft.New()
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return draft.Document{}, fmt.Errorf("parse document %s: %w", path, err)
	}
	if doc.Tone == "" {
		doc.Tone = catalog.TonePolite
	}
	if !doc.Tone.Valid() {
		return draft.Document{}, fmt.Errorf("document %s: unknown tone %q", path, doc.Tone)
	}
	if doc.Length != "" && !doc.Length.Valid() {
		return draft.Document{}, fmt.Errorf("document %s: unknown length %q", path, doc.Length)
	}
	return doc, nil
}

func saveDocument(path string, doc draft.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	defer f.Close()
	return writeOutput(f, "yaml", doc)
}

func loadCatalog() (*catalog.Catalog, error) {
	return catalog.Load(catalogFile)
}
