package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// BlockType identifies one kind of information block (breakfast, transfer, ...).
type BlockType string

const (
	BlockBreakfast    BlockType = "breakfast"
	BlockDinner       BlockType = "dinner"
	BlockTransfer     BlockType = "transfer"
	BlockCheckin      BlockType = "checkin"
	BlockParking      BlockType = "parking"
	BlockRoom         BlockType = "room"
	BlockBath         BlockType = "bath"
	BlockCancellation BlockType = "cancellation"
	BlockAccess       BlockType = "access"
	BlockOther        BlockType = "other"
)

// Tone selects the register of the generated reply.
type Tone string

const (
	TonePolite Tone = "polite"
	ToneLight  Tone = "light"
	ToneCasual Tone = "casual"
)

// Tones lists every tone in display order.
func Tones() []Tone { return []Tone{TonePolite, ToneLight, ToneCasual} }

func (t Tone) Valid() bool {
	switch t {
	case TonePolite, ToneLight, ToneCasual:
		return true
	}
	return false
}

// Length selects the verbosity of the generated reply.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Lengths lists every length in display order.
func Lengths() []Length { return []Length{LengthShort, LengthMedium, LengthLong} }

func (l Length) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// PresetOption is a named bundle of field values for one block type.
// Values are keyed by field label.
type PresetOption struct {
	Label  string            `json:"label" yaml:"label"`
	Values map[string]string `json:"values" yaml:"values"`
}

// Template describes a block type: how it is shown and which fields a new
// block starts with.
type Template struct {
	Type          BlockType      `json:"type" yaml:"type"`
	Label         string         `json:"label" yaml:"label"`
	Icon          string         `json:"icon" yaml:"icon"`
	DefaultFields []string       `json:"defaultFields" yaml:"fields"`
	Presets       []PresetOption `json:"presets" yaml:"presets"`
}

// Catalog is the immutable registry of block templates, presets and the
// tone/length guide text. Load it once at startup and share it.
type Catalog struct {
	templates map[BlockType]Template
	order     []BlockType
	tones     map[Tone]string
	lengths   map[Length]string
}

type catalogFile struct {
	Blocks  []Template        `yaml:"blocks"`
	Tones   map[Tone]string   `yaml:"tones"`
	Lengths map[Length]string `yaml:"lengths"`
}

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog bundled with the binary.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultCatalogYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load reads a catalog override file. An empty path yields the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		templates: make(map[BlockType]Template, len(file.Blocks)),
		order:     make([]BlockType, 0, len(file.Blocks)),
		tones:     make(map[Tone]string, len(file.Tones)),
		lengths:   make(map[Length]string, len(file.Lengths)),
	}

	for i, tpl := range file.Blocks {
		if tpl.Type == "" {
			return nil, fmt.Errorf("block #%d: type is required", i)
		}
		if _, dup := c.templates[tpl.Type]; dup {
			return nil, fmt.Errorf("block %q: duplicate type", tpl.Type)
		}
		if strings.TrimSpace(tpl.Label) == "" {
			return nil, fmt.Errorf("block %q: label is required", tpl.Type)
		}
		if len(tpl.DefaultFields) == 0 {
			return nil, fmt.Errorf("block %q: at least one field is required", tpl.Type)
		}
		if tpl.Presets == nil {
			tpl.Presets = []PresetOption{}
		}
		c.templates[tpl.Type] = tpl
		c.order = append(c.order, tpl.Type)
	}

	for _, tone := range Tones() {
		guide := strings.TrimSpace(file.Tones[tone])
		if guide == "" {
			return nil, fmt.Errorf("tone %q: guide text is required", tone)
		}
		c.tones[tone] = guide
	}
	for _, length := range Lengths() {
		guide := strings.TrimSpace(file.Lengths[length])
		if guide == "" {
			return nil, fmt.Errorf("length %q: guide text is required", length)
		}
		c.lengths[length] = guide
	}

	return c, nil
}

// Template returns the template registered for t.
func (c *Catalog) Template(t BlockType) (Template, bool) {
	tpl, ok := c.templates[t]
	return tpl, ok
}

func (c *Catalog) HasType(t BlockType) bool {
	_, ok := c.templates[t]
	return ok
}

// Label returns the display label for t, or "" when t is unknown.
func (c *Catalog) Label(t BlockType) string {
	return c.templates[t].Label
}

func (c *Catalog) Presets(t BlockType) []PresetOption {
	return c.templates[t].Presets
}

// Types returns the registered block types in display order.
func (c *Catalog) Types() []BlockType {
	out := make([]BlockType, len(c.order))
	copy(out, c.order)
	return out
}

// Templates returns every template in display order.
func (c *Catalog) Templates() []Template {
	out := make([]Template, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.templates[t])
	}
	return out
}

func (c *Catalog) ToneGuide(t Tone) string {
	return c.tones[t]
}

func (c *Catalog) LengthGuide(l Length) string {
	return c.lengths[l]
}
