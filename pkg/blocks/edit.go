package blocks

import "mailreply-be/pkg/catalog"

// Edit is one Block Editor operation expressed as data, so a document owner
// can route edits through a single reducer.
type Edit interface {
	apply(InfoBlock) InfoBlock
}

type AddFieldEdit struct{}

type DeleteFieldEdit struct{ FieldID string }

type SetValueEdit struct {
	FieldID string
	Value   string
}

type SetLabelEdit struct {
	FieldID string
	Label   string
}

type ToggleIncludeEdit struct{ FieldID string }

// ApplyPresetsEdit carries the preset list it selects from, which may be a
// transiently edited copy of the catalog presets.
type ApplyPresetsEdit struct {
	Presets  []catalog.PresetOption
	Selected []int
}

type SetTitleEdit struct{ Title string }

func (AddFieldEdit) apply(b InfoBlock) InfoBlock        { return AddField(b) }
func (e DeleteFieldEdit) apply(b InfoBlock) InfoBlock   { return DeleteField(b, e.FieldID) }
func (e SetValueEdit) apply(b InfoBlock) InfoBlock      { return SetFieldValue(b, e.FieldID, e.Value) }
func (e SetLabelEdit) apply(b InfoBlock) InfoBlock      { return SetFieldLabel(b, e.FieldID, e.Label) }
func (e ToggleIncludeEdit) apply(b InfoBlock) InfoBlock { return ToggleInclude(b, e.FieldID) }
func (e ApplyPresetsEdit) apply(b InfoBlock) InfoBlock  { return ApplyPresets(b, e.Presets, e.Selected) }
func (e SetTitleEdit) apply(b InfoBlock) InfoBlock      { return SetTitle(b, e.Title) }

// Apply runs edit against b. A nil edit returns an unchanged copy.
func Apply(b InfoBlock, edit Edit) InfoBlock {
	if edit == nil {
		return b.Clone()
	}
	return edit.apply(b)
}
