package gemini

import "strings"

type generateContentRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string     `json:"role,omitempty"`
	Parts []textPart `json:"parts"`
}

type textPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseModalities []string        `json:"responseModalities,omitempty"`
	Temperature        *float64        `json:"temperature,omitempty"`
	SpeechConfig       *speechConfig   `json:"speechConfig,omitempty"`
	ThinkingConfig     *thinkingConfig `json:"thinkingConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	Prebuilt prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type thinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content responseContent `json:"content"`
}

type responseContent struct {
	Parts []responsePart `json:"parts"`
}

// responsePart tolerates both the camelCase and snake_case field spellings
// the API has used for inline binary payloads.
type responsePart struct {
	Text            string      `json:"text,omitempty"`
	InlineData      *inlineData `json:"inlineData,omitempty"`
	InlineDataSnake *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType      string `json:"mimeType,omitempty"`
	MIMETypeSnake string `json:"mime_type,omitempty"`
	Data          string `json:"data"`
}

func (d *inlineData) mime() string {
	if d.MIMEType != "" {
		return d.MIMEType
	}
	return d.MIMETypeSnake
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// firstInlineData returns the base64 payload and MIME type of the first
// inline-data part across all candidates.
func (r *generateContentResponse) firstInlineData() (data, mime string, ok bool) {
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			inline := part.InlineData
			if inline == nil {
				inline = part.InlineDataSnake
			}
			if inline != nil && inline.Data != "" {
				return inline.Data, inline.mime(), true
			}
		}
	}
	return "", "", false
}

// firstText returns the concatenated text parts of the first candidate that
// has any.
func (r *generateContentResponse) firstText() (string, bool) {
	for _, cand := range r.Candidates {
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		if text := strings.TrimSpace(sb.String()); text != "" {
			return text, true
		}
	}
	return "", false
}

func summaryPrompt(code string) string {
	var sb strings.Builder
	sb.WriteString("Summarize the following code block in two or three plain English sentences ")
	sb.WriteString("suitable for reading aloud in an audiobook. Describe what the code does, ")
	sb.WriteString("not its syntax. Do not use markdown, symbols, or identifiers that are ")
	sb.WriteString("awkward to pronounce; spell things out in words.\n\n")
	sb.WriteString(code)
	return sb.String()
}
