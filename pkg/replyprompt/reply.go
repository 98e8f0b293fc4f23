package replyprompt

import (
	"strings"

	"mailreply-be/pkg/blocks"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/draft"
)

const replySystem = "あなたは日本のホテル・旅館のスタッフとして、お客様からのメールへの返信文を作成するアシスタントです。指示に厳密に従い、返信メールの本文のみを日本語で出力してください。"

// ReplyInput is the part of a document the reply prompt is built from.
type ReplyInput struct {
	CustomerText           string
	TranslatedCustomerText string
	InfoBlocks             []blocks.InfoBlock
	Notes                  string
	Tone                   catalog.Tone
	Length                 catalog.Length
}

// ReplyInputFromDocument picks the reply inputs out of a draft document.
func ReplyInputFromDocument(d draft.Document) ReplyInput {
	return ReplyInput{
		CustomerText:           d.CustomerText,
		TranslatedCustomerText: d.TranslatedCustomerText,
		InfoBlocks:             d.InfoBlocks,
		Notes:                  d.Notes,
		Tone:                   d.Tone,
		Length:                 d.Length,
	}
}

// BaseText prefers the Japanese translation of the customer message.
func (in ReplyInput) BaseText() string {
	if strings.TrimSpace(in.TranslatedCustomerText) != "" {
		return in.TranslatedCustomerText
	}
	return in.CustomerText
}

// ReplyBuilder assembles the generate-reply prompt section by section.
type ReplyBuilder struct {
	in      ReplyInput
	catalog *catalog.Catalog
}

func NewReplyBuilder(in ReplyInput, c *catalog.Catalog) *ReplyBuilder {
	return &ReplyBuilder{in: in, catalog: c}
}

// ReplyPrompt is shorthand for NewReplyBuilder(in, c).Prompt().
func ReplyPrompt(in ReplyInput, c *catalog.Catalog) Prompt {
	return NewReplyBuilder(in, c).Prompt()
}

func (b *ReplyBuilder) Prompt() Prompt {
	return Prompt{System: replySystem, User: b.Build()}
}

// Build renders the user message: task, customer message, must-include
// section, notes, tone, length, then the output rules.
func (b *ReplyBuilder) Build() string {
	var prompt strings.Builder

	mustInclude := FormatInfoBlocks(b.in.InfoBlocks, b.catalog)

	b.writeTask(&prompt)
	b.writeCustomerMessage(&prompt)
	if mustInclude != "" {
		prompt.WriteString(mustInclude)
		prompt.WriteString("\n\n")
	}
	b.writeNotes(&prompt)
	b.writeTone(&prompt)
	b.writeLength(&prompt)
	b.writeRules(&prompt, mustInclude != "")

	return strings.TrimRight(prompt.String(), "\n")
}

func (b *ReplyBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("以下のお客様からのメッセージに対して、ホテルとしての日本語の返信メール本文を作成してください。\n\n")
}

func (b *ReplyBuilder) writeCustomerMessage(prompt *strings.Builder) {
	prompt.WriteString("<customer_message>\n")
	prompt.WriteString(b.in.BaseText())
	prompt.WriteString("\n</customer_message>\n\n")
}

func (b *ReplyBuilder) writeNotes(prompt *strings.Builder) {
	notes := strings.TrimSpace(b.in.Notes)
	if notes == "" {
		return
	}
	prompt.WriteString("【スタッフからの補足メモ】\n")
	prompt.WriteString(notes)
	prompt.WriteString("\n\n")
}

func (b *ReplyBuilder) writeTone(prompt *strings.Builder) {
	if b.catalog == nil {
		return
	}
	guide := b.catalog.ToneGuide(b.in.Tone)
	if guide == "" {
		return
	}
	prompt.WriteString("【トーン】\n")
	prompt.WriteString(guide)
	prompt.WriteString("\n\n")
}

func (b *ReplyBuilder) writeLength(prompt *strings.Builder) {
	if b.in.Length == "" || b.catalog == nil {
		return
	}
	guide := b.catalog.LengthGuide(b.in.Length)
	if guide == "" {
		return
	}
	prompt.WriteString("【文章の長さ】\n")
	prompt.WriteString(guide)
	prompt.WriteString("\n\n")
}

func (b *ReplyBuilder) writeRules(prompt *strings.Builder, hasMustInclude bool) {
	prompt.WriteString("【出力ルール】\n")
	prompt.WriteString("- 返信メールの本文のみを出力すること（件名・宛名・署名・定型の挨拶や結びの言葉は書かない）\n")
	prompt.WriteString("- 数値・日付・時間・料金などの値は記載されたとおりに書き、変更・換算・丸めをしないこと\n")
	if hasMustInclude {
		prompt.WriteString("- 「必ず含める情報」の項目はひとつ残らず返信に盛り込むこと\n")
	}
	prompt.WriteString("- お客様の質問に的確に答え、簡潔で読みやすい文章にすること\n")
}
