package replyprompt

import "strings"

const englishSystem = `You are a professional translator for a Japanese hotel.
Translate the Japanese email reply you are given into natural, professional English.
Preserve the tone and level of formality of the original.
Keep every number, date, time and price exactly as written.
Output only the translated text, with no notes or explanations.`

// EnglishPrompt asks for an English rendering of a finished Japanese reply.
func EnglishPrompt(japaneseReply string) Prompt {
	var sb strings.Builder
	sb.WriteString("Translate this reply into English.\n\n")
	sb.WriteString("<japanese_reply>\n")
	sb.WriteString(japaneseReply)
	sb.WriteString("\n</japanese_reply>")

	return Prompt{System: englishSystem, User: sb.String()}
}
