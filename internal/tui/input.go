package tui

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// pageSize is the default number of items fetched per API call.
const pageSize = 50

// maxInputLen is the maximum number of runes allowed in the search input.
const maxInputLen = 200

// editKey applies a keystroke to inline text. Backspace removes one rune;
// typed or pasted runes are appended up to maxInputLen. Every other key
// leaves the text unchanged.
func editKey(text string, msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyBackspace:
		if len(text) > 0 {
			runes := []rune(text)
			return string(runes[:len(runes)-1])
		}
		return text
	case tea.KeySpace:
		return appendClamped(text, []rune{' '})
	case tea.KeyRunes:
		return appendClamped(text, msg.Runes)
	default:
		return text
	}
}

func appendClamped(text string, add []rune) string {
	room := maxInputLen - utf8.RuneCountInString(text)
	if room <= 0 {
		return text
	}
	if len(add) > room {
		add = add[:room]
	}
	return text + string(add)
}

// truncateToHeight limits output to maxLines newline-delimited lines.
// Returns the original string if it fits or maxLines is <= 0.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			n++
			if n >= maxLines {
				return s[:i+1]
			}
		}
	}
	return s
}
