package draft

import (
	"mailreply-be/pkg/blocks"
	"mailreply-be/pkg/catalog"
)

// Action is one update to a Document. The set of actions is closed.
type Action interface {
	reduce(Document) Document
}

type SetCustomerText struct{ Text string }

type SetNotes struct{ Notes string }

type SetTone struct{ Tone catalog.Tone }

// SetLength with an empty Length removes the length guidance.
type SetLength struct{ Length catalog.Length }

// AddBlock attaches a block seeded from Template, honoring Policy when a
// block of the same type is already present.
type AddBlock struct {
	Template catalog.Template
	Policy   AddPolicy
}

type RemoveBlock struct{ ID string }

// EditBlock runs a Block Editor operation on the block with ID.
type EditBlock struct {
	ID   string
	Edit blocks.Edit
}

// ReplaceBlock swaps in Block by id; unknown ids are ignored.
type ReplaceBlock struct{ Block blocks.InfoBlock }

// ApplyTranslation merges the result of a translate call.
type ApplyTranslation struct {
	Text     string
	Language string
}

// ApplyReply merges the result of a generate call.
type ApplyReply struct {
	Reply   string
	English string
}

type SetReply struct{ Reply string }

type SetEnglishTranslation struct{ Text string }

type Reset struct{}

// Reduce applies action to doc and returns the new document. doc itself is
// never modified.
func Reduce(doc Document, action Action) Document {
	if action == nil {
		return doc.Clone()
	}
	return action.reduce(doc.Clone())
}

// A new customer message invalidates the previous translation.
func (a SetCustomerText) reduce(d Document) Document {
	if d.CustomerText != a.Text {
		d.TranslatedCustomerText = ""
		d.DetectedLanguage = ""
	}
	d.CustomerText = a.Text
	return d
}

func (a SetNotes) reduce(d Document) Document {
	d.Notes = a.Notes
	return d
}

func (a SetTone) reduce(d Document) Document {
	if a.Tone.Valid() {
		d.Tone = a.Tone
	}
	return d
}

func (a SetLength) reduce(d Document) Document {
	if a.Length == "" || a.Length.Valid() {
		d.Length = a.Length
	}
	return d
}

func (a AddBlock) reduce(d Document) Document {
	policy := a.Policy
	if policy == "" {
		policy = PolicyToggle
	}

	if policy != PolicyMulti && d.HasType(a.Template.Type) {
		if policy == PolicyToggle {
			kept := d.InfoBlocks[:0]
			for _, b := range d.InfoBlocks {
				if b.Type != a.Template.Type {
					kept = append(kept, b)
				}
			}
			d.InfoBlocks = kept
		}
		return d
	}

	d.InfoBlocks = append(d.InfoBlocks, blocks.New(a.Template))
	return d
}

func (a RemoveBlock) reduce(d Document) Document {
	if i := d.BlockIndex(a.ID); i >= 0 {
		d.InfoBlocks = append(d.InfoBlocks[:i], d.InfoBlocks[i+1:]...)
	}
	return d
}

func (a EditBlock) reduce(d Document) Document {
	if i := d.BlockIndex(a.ID); i >= 0 {
		d.InfoBlocks[i] = blocks.Apply(d.InfoBlocks[i], a.Edit)
	}
	return d
}

func (a ReplaceBlock) reduce(d Document) Document {
	if i := d.BlockIndex(a.Block.Id); i >= 0 {
		d.InfoBlocks[i] = a.Block.Clone()
	}
	return d
}

func (a ApplyTranslation) reduce(d Document) Document {
	d.TranslatedCustomerText = a.Text
	d.DetectedLanguage = a.Language
	return d
}

func (a ApplyReply) reduce(d Document) Document {
	d.Reply = a.Reply
	d.EnglishTranslation = a.English
	return d
}

func (a SetReply) reduce(d Document) Document {
	d.Reply = a.Reply
	return d
}

func (a SetEnglishTranslation) reduce(d Document) Document {
	d.EnglishTranslation = a.Text
	return d
}

func (Reset) reduce(Document) Document {
	return New()
}
