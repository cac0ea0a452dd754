package content

import (
	"fmt"
	"time"

	"github.com/Rrens/content-creator-bot/internal/domain"
)

var catalog = map[domain.ContentType][]domain.ToolLink{
	domain.ContentImage: {
		{Name: "Bing Image Creator", URL: "https://www.bing.com/images/create", Free: true},
		{Name: "Leonardo.ai", URL: "https://leonardo.ai/", Free: true},
		{Name: "Stable Diffusion", URL: "https://stablediffusionweb.com/", Free: true},
		{Name: "Craiyon", URL: "https://www.craiyon.com/", Free: true},
	},
	domain.ContentVideo: {
		{Name: "Canva Video", URL: "https://www.canva.com/create/videos/", Free: true},
		{Name: "CapCut", URL: "https://www.capcut.com/", Free: true},
		{Name: "DaVinci Resolve", URL: "https://www.blackmagicdesign.com/products/davinciresolve", Free: true},
		{Name: "Clipchamp", URL: "https://clipchamp.com/", Free: true},
	},
	domain.ContentArticle: {
		{Name: "Medium", URL: "https://medium.com/new-story", Free: true},
		{Name: "WordPress", URL: "https://wordpress.com/", Free: true},
		{Name: "Blogger", URL: "https://www.blogger.com/", Free: true},
		{Name: "LinkedIn Articles", URL: "https://www.linkedin.com/", Free: true},
	},
}

var headings = map[domain.ContentType]string{
	domain.ContentVideo:   "🎬 Video Script Ready",
	domain.ContentImage:   "🎨 Image Prompt Ready",
	domain.ContentArticle: "📝 Article Ready",
}

var intros = map[domain.ContentType]string{
	domain.ContentImage:   "🎨 Use your prompt with these free AI image generators:",
	domain.ContentVideo:   "🎬 Create your video with these free tools:",
	domain.ContentArticle: "📝 Publish your article on these platforms:",
}

var formatLabels = map[domain.ContentType]string{
	domain.ContentVideo:   "short video script",
	domain.ContentImage:   "AI image description",
	domain.ContentArticle: "brief article",
}

// ToolLinks returns a copy of the tool catalog for a category
func ToolLinks(ct domain.ContentType) []domain.ToolLink {
	tools := catalog[ct]
	if tools == nil {
		return nil
	}
	out := make([]domain.ToolLink, len(tools))
	copy(out, tools)
	return out
}

func Heading(ct domain.ContentType) string {
	return headings[ct]
}

func ToolsIntro(ct domain.ContentType) string {
	return intros[ct]
}

// FormatLabel is the phrase used when asking for a specific format
func FormatLabel(ct domain.ContentType) string {
	return formatLabels[ct]
}

// FormatRequest synthesizes the user turn for an explicit format request
func FormatRequest(ct domain.ContentType) string {
	return fmt.Sprintf("Please create a %s based on our conversation.", FormatLabel(ct))
}

// ExportFilename names a downloaded content file
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("content_%d.txt", now.UnixMilli())
}

// Build assembles the follow-up view for a classified reply.
// It returns nil when the reply is unclassified.
func Build(ct domain.ContentType, reply string, now time.Time) *domain.GeneratedContent {
	if !ct.Valid() {
		return nil
	}
	return &domain.GeneratedContent{
		Type:     ct,
		Heading:  Heading(ct),
		Text:     reply,
		Filename: ExportFilename(now),
		Intro:    ToolsIntro(ct),
		Tools:    ToolLinks(ct),
	}
}
