package blocks

import (
	"strings"

	"mailreply-be/pkg/catalog"

	"github.com/google/uuid"
)

// PlaceholderLabel is the label given to fields added by hand.
const PlaceholderLabel = "項目"

// NewID generates block and field ids. Tests may swap it for a deterministic source.
var NewID = uuid.NewString

// BlockField is one label/value pair of an information block.
// A nil IncludeInReply means the field is included. Ids are only needed by
// editors; prompts never read them.
type BlockField struct {
	Id             string `json:"id,omitempty" yaml:"id,omitempty"`
	Label          string `json:"label" yaml:"label"`
	Value          string `json:"value" yaml:"value"`
	IncludeInReply *bool  `json:"includeInReply,omitempty" yaml:"includeInReply,omitempty"`
}

// Included reports whether the field takes part in the generated reply.
func (f BlockField) Included() bool {
	return f.IncludeInReply == nil || *f.IncludeInReply
}

// HasValue reports whether the value is non-blank.
func (f BlockField) HasValue() bool {
	return strings.TrimSpace(f.Value) != ""
}

// InfoBlock is a typed group of fields attached to a reply draft.
type InfoBlock struct {
	Id     string            `json:"id,omitempty" yaml:"id,omitempty"`
	Type   catalog.BlockType `json:"type" yaml:"type" validate:"required,blocktype"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []BlockField      `json:"fields" yaml:"fields" validate:"dive"`
}

// New creates a block of type t whose fields follow the template's default
// labels in order, with empty values.
func New(tpl catalog.Template) InfoBlock {
	fields := make([]BlockField, len(tpl.DefaultFields))
	for i, label := range tpl.DefaultFields {
		fields[i] = BlockField{Id: NewID(), Label: label}
	}
	return InfoBlock{
		Id:     NewID(),
		Type:   tpl.Type,
		Fields: fields,
	}
}

// IncludedFields returns the fields that would be emitted into a prompt:
// included and with a non-blank value.
func (b InfoBlock) IncludedFields() []BlockField {
	var out []BlockField
	for _, f := range b.Fields {
		if f.Included() && f.HasValue() {
			out = append(out, f)
		}
	}
	return out
}

// FieldIndex returns the position of the field with the given id, or -1.
func (b InfoBlock) FieldIndex(fieldID string) int {
	for i, f := range b.Fields {
		if f.Id == fieldID {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares no mutable state with b.
func (b InfoBlock) Clone() InfoBlock {
	out := b
	out.Fields = make([]BlockField, len(b.Fields))
	for i, f := range b.Fields {
		if f.IncludeInReply != nil {
			v := *f.IncludeInReply
			f.IncludeInReply = &v
		}
		out.Fields[i] = f
	}
	return out
}

func boolPtr(v bool) *bool { return &v }
