package replyprompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mailreply-be/pkg/llm"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const translateSystem = `You are a professional translator working for a Japanese hotel.
Detect the language of the customer's email and translate it into natural, polite Japanese.
Respond with a single JSON object and nothing else:
{"language": "<name of the detected language in English, e.g. English, Chinese, Korean>", "translatedText": "<the Japanese translation>"}
If the email is already written in Japanese, set "language" to "Japanese" and return the text unchanged.
Do not change numbers, dates, times, prices or proper nouns.`

const translationSchemaJSON = `{
  "type": "object",
  "properties": {
    "language": {"type": "string", "description": "Detected language of the original email, in English"},
    "translatedText": {"type": "string", "description": "The email translated into Japanese"}
  },
  "required": ["language", "translatedText"],
  "additionalProperties": false
}`

// TranslationSchemaName names the structured response for providers that need one.
const TranslationSchemaName = "customer_email_translation"

var (
	translationSchema    = jsonschema.MustCompileString("translation.json", translationSchemaJSON)
	translationSchemaMap = mustSchemaMap(translationSchemaJSON)
)

// ErrUnparseable reports a translation response with no usable JSON object.
var ErrUnparseable = errors.New("replyprompt: response does not contain a valid translation object")

// Translation is the structured result of a translate call.
type Translation struct {
	Language       string `json:"language"`
	TranslatedText string `json:"translatedText"`
}

// TranslationSchema returns the JSON schema a translate response must follow.
func TranslationSchema() *llm.JSONSchema {
	return &llm.JSONSchema{Name: TranslationSchemaName, Schema: translationSchemaMap}
}

// TranslatePrompt asks for the customer email in Japanese plus the detected language.
func TranslatePrompt(customerText string) Prompt {
	var sb strings.Builder
	sb.WriteString("次のお客様からのメールを日本語に翻訳し、指定のJSON形式で返してください。\n\n")
	sb.WriteString("<customer_email>\n")
	sb.WriteString(customerText)
	sb.WriteString("\n</customer_email>")

	return Prompt{
		System: translateSystem,
		User:   sb.String(),
		Schema: TranslationSchema(),
	}
}

// ParseTranslation accepts either a bare JSON object or free text with an
// object embedded in it (code fences included). The object must match the
// translation schema and carry a non-blank translation.
func ParseTranslation(raw string) (Translation, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return Translation{}, fmt.Errorf("%w: empty response", ErrUnparseable)
	}

	var lastErr error
	for _, candidate := range jsonCandidates(content) {
		var doc any
		if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
			lastErr = err
			continue
		}
		if err := translationSchema.Validate(doc); err != nil {
			lastErr = err
			continue
		}

		var t Translation
		if err := json.Unmarshal([]byte(candidate), &t); err != nil {
			lastErr = err
			continue
		}
		t.Language = strings.TrimSpace(t.Language)
		t.TranslatedText = strings.TrimSpace(t.TranslatedText)
		if t.TranslatedText == "" {
			lastErr = errors.New("translatedText is blank")
			continue
		}
		if t.Language == "" {
			t.Language = "Unknown"
		}
		return t, nil
	}

	if lastErr == nil {
		return Translation{}, ErrUnparseable
	}
	return Translation{}, fmt.Errorf("%w: %v", ErrUnparseable, lastErr)
}

// jsonCandidates lists the strings worth trying as JSON, most literal first:
// the whole content, the body of a code fence, and the span from the first
// '{' through the last '}'.
func jsonCandidates(content string) []string {
	candidates := []string{content}
	if fenced := stripCodeFences(content); fenced != "" && fenced != content {
		candidates = append(candidates, fenced)
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		if span := content[start : end+1]; span != content {
			candidates = append(candidates, span)
		}
	}
	return candidates
}

func stripCodeFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return ""
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func mustSchemaMap(schema string) map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(schema), &m); err != nil {
		panic(fmt.Sprintf("replyprompt: invalid schema: %v", err))
	}
	return m
}
