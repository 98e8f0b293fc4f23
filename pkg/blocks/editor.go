package blocks

import "mailreply-be/pkg/catalog"

// Every editor operation leaves its input untouched and returns the updated
// block. The caller replaces the block by id in its document.

func AddField(b InfoBlock) InfoBlock {
	out := b.Clone()
	out.Fields = append(out.Fields, BlockField{
		Id:             NewID(),
		Label:          PlaceholderLabel,
		IncludeInReply: boolPtr(true),
	})
	return out
}

// DeleteField removes the field with fieldID. Unknown ids are a no-op.
func DeleteField(b InfoBlock, fieldID string) InfoBlock {
	out := b.Clone()
	idx := out.FieldIndex(fieldID)
	if idx < 0 {
		return out
	}
	out.Fields = append(out.Fields[:idx], out.Fields[idx+1:]...)
	return out
}

func SetFieldValue(b InfoBlock, fieldID, value string) InfoBlock {
	return updateField(b, fieldID, func(f *BlockField) { f.Value = value })
}

func SetFieldLabel(b InfoBlock, fieldID, label string) InfoBlock {
	return updateField(b, fieldID, func(f *BlockField) { f.Label = label })
}

// ToggleInclude flips whether the field is used in the reply. An unset flag
// counts as included, so the first toggle excludes it.
func ToggleInclude(b InfoBlock, fieldID string) InfoBlock {
	return updateField(b, fieldID, func(f *BlockField) {
		f.IncludeInReply = boolPtr(!f.Included())
	})
}

func SetTitle(b InfoBlock, title string) InfoBlock {
	out := b.Clone()
	out.Title = title
	return out
}

// MergePresets combines the value maps of the selected presets in selection
// order; a later preset wins on a label collision. Indices outside presets
// are ignored.
func MergePresets(presets []catalog.PresetOption, selected []int) map[string]string {
	merged := make(map[string]string)
	for _, idx := range selected {
		if idx < 0 || idx >= len(presets) {
			continue
		}
		for label, value := range presets[idx].Values {
			merged[label] = value
		}
	}
	return merged
}

// ApplyPresets overwrites the value of every field whose label appears in
// the merged preset values. Fields without a match keep their value.
func ApplyPresets(b InfoBlock, presets []catalog.PresetOption, selected []int) InfoBlock {
	merged := MergePresets(presets, selected)
	out := b.Clone()
	for i := range out.Fields {
		if value, ok := merged[out.Fields[i].Label]; ok {
			out.Fields[i].Value = value
		}
	}
	return out
}

func updateField(b InfoBlock, fieldID string, fn func(*BlockField)) InfoBlock {
	out := b.Clone()
	if idx := out.FieldIndex(fieldID); idx >= 0 {
		fn(&out.Fields[idx])
	}
	return out
}
