// Package translate turns OCR markdown into English while protecting the
// parts a text-rewriting model must not touch: HTML tables, markdown
// syntax, and inline base64 image payloads (shielded behind placeholder
// tokens for the duration of the API call).
package translate

import (
	"context"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"pdf-to-english/internal/logger"
	"pdf-to-english/internal/types"
)

// systemPromptTemplate instructs the model to translate only natural
// language text. The rules are enumerated explicitly because the shield
// cannot verify anything beyond literal token survival.
const systemPromptTemplate = `You are a professional translator specialising in document translation.
%TASK%

CRITICAL RULES - YOU MUST FOLLOW THESE EXACTLY:

1. PRESERVE ALL HTML TAGS EXACTLY AS THEY APPEAR:
   - Keep all <table>, <tr>, <td>, <th> tags unchanged
   - Keep all attributes like colspan="2", rowspan="3" exactly as written
   - Keep all <div>, <span>, and other HTML tags with their attributes

2. PRESERVE ALL MARKDOWN FORMATTING:
   - Keep headers (# ## ###) at the start of lines
   - Keep bold (**text**) and italic (*text*) markers
   - Keep list markers (- or *)
   - Keep code blocks and inline code

3. PRESERVE ALL IMAGE REFERENCES EXACTLY:
   - Keep ![alt](url) format unchanged
   - Keep image placeholder tokens like IMG_PLACEHOLDER_0 exactly as they appear
   - Do not modify any URLs or file paths

4. ONLY TRANSLATE THE ACTUAL TEXT CONTENT:
   - Translate text inside HTML tags
   - Translate alt text descriptions
   - Do NOT translate HTML attribute values
   - Do NOT translate URLs, file paths, or code

5. MAINTAIN DOCUMENT STRUCTURE:
   - Keep the same line breaks and spacing
   - Keep the same paragraph structure

Return ONLY the translated document. Do not add explanations or notes.`

// chatModel is the slice of the eino chat model interface the engine uses.
type chatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Engine translates markdown documents via an OpenAI-compatible chat model.
type Engine struct {
	model      chatModel
	sourceLang string
	targetLang string
}

// NewEngine creates a translation engine backed by the OpenAI-compatible
// chat completions endpoint at baseURL (the Mistral API by default).
func NewEngine(ctx context.Context, apiKey, baseURL, modelName, sourceLang, targetLang string) (*Engine, error) {
	cfg := &openai.ChatModelConfig{
		Model:  modelName,
		APIKey: apiKey,
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	cm, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		logger.Error("failed to create chat model", err)
		return nil, types.NewAppError(types.ErrTranslation, "failed to create chat model", err)
	}

	return NewEngineWithModel(cm, sourceLang, targetLang), nil
}

// NewEngineWithModel creates an engine around an existing chat model.
func NewEngineWithModel(cm chatModel, sourceLang, targetLang string) *Engine {
	if targetLang == "" {
		targetLang = "English"
	}
	return &Engine{
		model:      cm,
		sourceLang: languageName(sourceLang),
		targetLang: languageName(targetLang),
	}
}

// languageName resolves a BCP-47 tag to its English display name
// ("fr" -> "French"). Values that do not parse as tags are used verbatim,
// so plain names like "French" work too. Empty stays empty (auto-detect).
func languageName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return s
}

// systemPrompt renders the translation instructions for the configured
// language pair.
func (e *Engine) systemPrompt() string {
	var task string
	if e.sourceLang == "" {
		task = "Detect the document's language and translate it to " + e.targetLang + "."
	} else {
		task = "Translate the following document from " + e.sourceLang + " to " + e.targetLang + "."
	}
	return strings.Replace(systemPromptTemplate, "%TASK%", task, 1)
}

// Translate converts markdown to the target language while preserving all
// formatting. Base64 image payloads are stripped before the API call and
// restored afterwards; a lost placeholder token is surfaced as an error.
func (e *Engine) Translate(ctx context.Context, markdown string) (string, error) {
	stripped, images := StripImages(markdown)

	logger.Info("translating document",
		logger.Int("inputLength", len(markdown)),
		logger.Int("strippedLength", len(stripped)),
		logger.Int("shieldedImages", len(images)))

	resp, err := e.model.Generate(ctx, []*schema.Message{
		schema.SystemMessage(e.systemPrompt()),
		schema.UserMessage(stripped),
	})
	if err != nil {
		logger.Error("translation request failed", err)
		return "", types.NewAppError(types.ErrTranslation, "translation request failed", err)
	}
	if resp == nil || resp.Content == "" {
		logger.Error("translation returned empty content", nil)
		return "", types.NewAppError(types.ErrTranslation, "translation returned empty content", nil)
	}

	restored, err := RestoreImages(resp.Content, images)
	if err != nil {
		return "", err
	}

	logger.Info("translation complete", logger.Int("outputLength", len(restored)))
	return restored, nil
}
