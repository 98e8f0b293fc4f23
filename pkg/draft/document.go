// Package draft holds the per-session reply document and the closed set of
// actions that update it.
package draft

import (
	"fmt"
	"strings"

	"mailreply-be/pkg/blocks"
	"mailreply-be/pkg/catalog"
)

// AddPolicy decides what adding a block type that is already present does.
type AddPolicy string

const (
	// PolicyToggle removes the existing block of that type instead of adding.
	PolicyToggle AddPolicy = "toggle"
	// PolicyUnique ignores the request.
	PolicyUnique AddPolicy = "unique"
	// PolicyMulti always appends a new block.
	PolicyMulti AddPolicy = "multi"
)

// ParseAddPolicy accepts "toggle", "unique" or "multi". An empty string
// selects PolicyToggle.
func ParseAddPolicy(s string) (AddPolicy, error) {
	switch p := AddPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyToggle, nil
	case PolicyToggle, PolicyUnique, PolicyMulti:
		return p, nil
	default:
		return "", fmt.Errorf("unknown block add policy %q", s)
	}
}

// Document is everything the operator edits while drafting one reply.
type Document struct {
	CustomerText           string             `json:"customerText" yaml:"customerText"`
	TranslatedCustomerText string             `json:"translatedCustomerText,omitempty" yaml:"translatedCustomerText,omitempty"`
	DetectedLanguage       string             `json:"detectedLanguage,omitempty" yaml:"detectedLanguage,omitempty"`
	InfoBlocks             []blocks.InfoBlock `json:"infoBlocks" yaml:"infoBlocks"`
	Notes                  string             `json:"notes" yaml:"notes"`
	Tone                   catalog.Tone       `json:"tone" yaml:"tone"`
	Length                 catalog.Length     `json:"length,omitempty" yaml:"length,omitempty"`
	Reply                  string             `json:"reply" yaml:"reply"`
	EnglishTranslation     string             `json:"englishTranslation" yaml:"englishTranslation"`
}

// New returns an empty document with the default tone.
func New() Document {
	return Document{
		InfoBlocks: []blocks.InfoBlock{},
		Tone:       catalog.TonePolite,
	}
}

// BlockIndex returns the position of the block with the given id, or -1.
func (d Document) BlockIndex(id string) int {
	for i, b := range d.InfoBlocks {
		if b.Id == id {
			return i
		}
	}
	return -1
}

// Block returns the block with the given id.
func (d Document) Block(id string) (blocks.InfoBlock, bool) {
	if i := d.BlockIndex(id); i >= 0 {
		return d.InfoBlocks[i], true
	}
	return blocks.InfoBlock{}, false
}

// HasType reports whether a block of type t is attached.
func (d Document) HasType(t catalog.BlockType) bool {
	for _, b := range d.InfoBlocks {
		if b.Type == t {
			return true
		}
	}
	return false
}

// BaseText is the customer message the reply is written against: the
// Japanese translation when there is one, else the raw text.
func (d Document) BaseText() string {
	if strings.TrimSpace(d.TranslatedCustomerText) != "" {
		return d.TranslatedCustomerText
	}
	return d.CustomerText
}

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	out := d
	out.InfoBlocks = make([]blocks.InfoBlock, len(d.InfoBlocks))
	for i, b := range d.InfoBlocks {
		out.InfoBlocks[i] = b.Clone()
	}
	return out
}
