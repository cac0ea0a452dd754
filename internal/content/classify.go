package content

import (
	"strings"
	"unicode/utf8"

	"github.com/Rrens/content-creator-bot/internal/domain"
)

// ArticleMinLength is the rune count above which an unmarked reply counts as an article
const ArticleMinLength = 500

var markers = []struct {
	kind    domain.ContentType
	needles []string
}{
	{domain.ContentVideo, []string{"VIDEO SCRIPT", "**Video Script"}},
	{domain.ContentImage, []string{"IMAGE DESCRIPTION", "**Image Description"}},
	{domain.ContentArticle, []string{"ARTICLE"}},
}

// Classify labels an assistant reply by case-sensitive marker search.
// The first matching category wins; a long reply with no marker is an article.
func Classify(reply string) domain.ContentType {
	for _, m := range markers {
		for _, needle := range m.needles {
			if strings.Contains(reply, needle) {
				return m.kind
			}
		}
		if m.kind == domain.ContentArticle && utf8.RuneCountInString(reply) > ArticleMinLength {
			return domain.ContentArticle
		}
	}
	return domain.ContentNone
}
