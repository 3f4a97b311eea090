package conversation

import "strings"

const (
	titleMaxWords = 8
	titleMaxRunes = 40
	titleEllipsis = "..."
)

// DeriveTitle builds a session title from the first user message: the first
// eight space-separated words, cut to 40 characters, with "..." appended when
// the message had more than eight words.
func DeriveTitle(message string) string {
	words := strings.Split(message, " ")

	limit := len(words)
	if limit > titleMaxWords {
		limit = titleMaxWords
	}
	title := strings.Join(words[:limit], " ")

	if runes := []rune(title); len(runes) > titleMaxRunes {
		title = string(runes[:titleMaxRunes])
	}

	if len(words) > titleMaxWords {
		title += titleEllipsis
	}
	return title
}
