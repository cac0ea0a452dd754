package domain

// ContentType is the heuristic category of an assistant reply
type ContentType string

const (
	ContentNone    ContentType = ""
	ContentVideo   ContentType = "video"
	ContentImage   ContentType = "image"
	ContentArticle ContentType = "article"
)

// Valid reports whether the content type names one of the three categories
func (c ContentType) Valid() bool {
	switch c {
	case ContentVideo, ContentImage, ContentArticle:
		return true
	}
	return false
}

// ToolLink points at a third-party tool for publishing generated content
type ToolLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Free bool   `json:"free"`
}

// GeneratedContent is the classified outcome of the latest assistant reply
type GeneratedContent struct {
	Type     ContentType `json:"type"`
	Heading  string      `json:"heading"`
	Text     string      `json:"text"`
	Filename string      `json:"filename"`
	Intro    string      `json:"tools_intro"`
	Tools    []ToolLink  `json:"tools"`
}

// TurnResult is what one dialogue turn hands back to the presentation layer
type TurnResult struct {
	Session *Session          `json:"session"`
	Skipped bool              `json:"skipped"`
	Reply   string            `json:"reply,omitempty"`
	Failed  bool              `json:"failed,omitempty"`
	Content *GeneratedContent `json:"content,omitempty"`
	Formats bool              `json:"formats_available"`
}
