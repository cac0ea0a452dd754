package content_test

import (
	"strings"
	"testing"
	"time"

	"github.com/Rrens/content-creator-bot/internal/content"
	"github.com/Rrens/content-creator-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  domain.ContentType
	}{
		{"bold video marker short", "**Video Script** (30s)", domain.ContentVideo},
		{"bold video marker long", strings.Repeat("x", 900) + "**Video Script", domain.ContentVideo},
		{"upper video marker", "Here is your VIDEO SCRIPT:", domain.ContentVideo},
		{"video beats image", "IMAGE DESCRIPTION then VIDEO SCRIPT", domain.ContentVideo},
		{"image marker", "**Image Description**: a cat", domain.ContentImage},
		{"image beats article", "IMAGE DESCRIPTION for my ARTICLE", domain.ContentImage},
		{"article marker", "ARTICLE: Coffee", domain.ContentArticle},
		{"501 runes", strings.Repeat("a", 501), domain.ContentArticle},
		{"500 runes", strings.Repeat("a", 500), domain.ContentNone},
		{"multibyte under threshold", strings.Repeat("é", 300), domain.ContentNone},
		{"100 runes", strings.Repeat("b", 100), domain.ContentNone},
		{"lowercase marker ignored", "video script", domain.ContentNone},
		{"empty", "", domain.ContentNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, content.Classify(tt.reply))
		})
	}
}

func TestToolLinks(t *testing.T) {
	for _, ct := range []domain.ContentType{domain.ContentVideo, domain.ContentImage, domain.ContentArticle} {
		tools := content.ToolLinks(ct)
		require.Len(t, tools, 4, ct)
		for _, tool := range tools {
			assert.True(t, strings.HasPrefix(tool.URL, "https://"), tool.URL)
			assert.True(t, tool.Free)
		}
	}

	assert.Nil(t, content.ToolLinks(domain.ContentNone))

	tools := content.ToolLinks(domain.ContentImage)
	tools[0].Name = "mutated"
	assert.Equal(t, "Bing Image Creator", content.ToolLinks(domain.ContentImage)[0].Name)
}

func TestFormatRequest(t *testing.T) {
	assert.Equal(t, "Please create a short video script based on our conversation.", content.FormatRequest(domain.ContentVideo))
	assert.Equal(t, "Please create a AI image description based on our conversation.", content.FormatRequest(domain.ContentImage))
	assert.Equal(t, "Please create a brief article based on our conversation.", content.FormatRequest(domain.ContentArticle))
}

func TestExportFilename(t *testing.T) {
	now := time.UnixMilli(1_700_000_000_123)
	assert.Equal(t, "content_1700000000123.txt", content.ExportFilename(now))
}

func TestBuild(t *testing.T) {
	now := time.UnixMilli(42)

	got := content.Build(domain.ContentArticle, "ARTICLE body", now)
	require.NotNil(t, got)
	assert.Equal(t, "📝 Article Ready", got.Heading)
	assert.Equal(t, "📝 Publish your article on these platforms:", got.Intro)
	assert.Equal(t, "content_42.txt", got.Filename)
	assert.Equal(t, "ARTICLE body", got.Text)
	assert.Len(t, got.Tools, 4)

	assert.Nil(t, content.Build(domain.ContentNone, "hi", now))
}
