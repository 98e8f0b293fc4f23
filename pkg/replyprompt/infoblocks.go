package replyprompt

import (
	"fmt"
	"strings"

	"mailreply-be/pkg/blocks"
	"mailreply-be/pkg/catalog"
)

const (
	MustIncludeHeader = "【必ず含める情報】以下の内容はすべて返信に含めること。数値・時間・料金などの値は一字一句そのまま記載し、変更しないこと。"
	MustIncludeFooter = "【必ず含める情報ここまで】"
)

// BlockLabel resolves the name a block is shown under: its own title, else
// the catalog label for its type, else the raw type tag.
func BlockLabel(b blocks.InfoBlock, c *catalog.Catalog) string {
	if title := strings.TrimSpace(b.Title); title != "" {
		return title
	}
	if c != nil {
		if label := c.Label(b.Type); label != "" {
			return label
		}
	}
	return string(b.Type)
}

// FormatInfoBlocks renders the must-include section. Excluded fields and
// blank values are skipped, blocks left with nothing are dropped, and an
// empty string is returned when no block remains. Values are copied verbatim.
func FormatInfoBlocks(infoBlocks []blocks.InfoBlock, c *catalog.Catalog) string {
	rendered := make([]string, 0, len(infoBlocks))
	for _, b := range infoBlocks {
		fields := b.IncludedFields()
		if len(fields) == 0 {
			continue
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d. %s", len(rendered)+1, BlockLabel(b, c))
		for _, f := range fields {
			sb.WriteString("\n- ")
			if label := strings.TrimSpace(f.Label); label != "" {
				sb.WriteString(label)
				sb.WriteString(": ")
			}
			sb.WriteString(f.Value)
		}
		rendered = append(rendered, sb.String())
	}

	if len(rendered) == 0 {
		return ""
	}

	return MustIncludeHeader + "\n" + strings.Join(rendered, "\n\n") + "\n" + MustIncludeFooter
}
