package dto

import (
	"mailreply-be/pkg/blocks"
	"mailreply-be/pkg/catalog"
	"mailreply-be/pkg/draft"
)

type Action string

const (
	ActionTranslate          Action = "translate"
	ActionTranslateToEnglish Action = "translate-to-english"
	ActionGenerate           Action = "generate"
)

// ActionEnvelope is decoded first to pick the request variant.
type ActionEnvelope struct {
	Action Action `json:"action" validate:"required,oneof=translate translate-to-english generate"`
}

type TranslateRequest struct {
	Action       Action `json:"action"`
	CustomerText string `json:"customerText" validate:"required,notblank"`
}

type TranslateResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage string `json:"detectedLanguage"`
}

type TranslateToEnglishRequest struct {
	Action Action `json:"action"`
	Text   string `json:"text" validate:"required,notblank"`
}

type TranslateToEnglishResponse struct {
	TranslatedText string `json:"translatedText"`
}

type GenerateRequest struct {
	Action                 Action             `json:"action"`
	CustomerText           string             `json:"customerText" validate:"required,notblank"`
	TranslatedCustomerText string             `json:"translatedCustomerText,omitempty"`
	InfoBlocks             []blocks.InfoBlock `json:"infoBlocks,omitempty" validate:"dive"`
	Notes                  string             `json:"notes,omitempty"`
	Tone                   catalog.Tone       `json:"tone" validate:"required,oneof=polite light casual"`
	Length                 catalog.Length     `json:"length,omitempty" validate:"omitempty,oneof=short medium long"`
}

type GenerateResponse struct {
	Reply              string `json:"reply"`
	EnglishTranslation string `json:"englishTranslation,omitempty"`
}

type CatalogResponse struct {
	Blocks    []catalog.Template `json:"blocks"`
	Tones     []OptionDTO        `json:"tones"`
	Lengths   []OptionDTO        `json:"lengths"`
	AddPolicy draft.AddPolicy    `json:"addPolicy"`
}

type OptionDTO struct {
	Value string `json:"value"`
	Guide string `json:"guide"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
}
