package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestEditKeyAddCharacters(t *testing.T) {
	tests := []struct {
		name  string
		start string
		key   tea.KeyMsg
		want  string
	}{
		{"append to empty", "", runes("a"), "a"},
		{"append letter", "ethiopi", runes("a"), "ethiopia"},
		{"append digit", "abc", runes("1"), "abc1"},
		{"append space", "dark", tea.KeyMsg{Type: tea.KeySpace}, "dark "},
		{"append accented", "caf", runes("é"), "café"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editKey(tc.start, tc.key)
			if got != tc.want {
				t.Errorf("editKey(%q, %v) = %q, want %q", tc.start, tc.key, got, tc.want)
			}
		})
	}
}

func TestEditKeyBackspace(t *testing.T) {
	tests := []struct {
		name  string
		start string
		want  string
	}{
		{"backspace on single char", "a", ""},
		{"backspace on longer string", "hello", "hell"},
		{"backspace on empty does nothing", "", ""},
		{"backspace removes multibyte rune", "café", "caf"},
		{"backspace removes emoji", "hello\U0001f600", "hello"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := editKey(tc.start, tea.KeyMsg{Type: tea.KeyBackspace})
			if got != tc.want {
				t.Errorf("editKey(%q, backspace) = %q, want %q", tc.start, got, tc.want)
			}
		})
	}
}

func TestEditKeyIgnoresNonPrintableKeys(t *testing.T) {
	keys := []tea.KeyType{
		tea.KeyEnter, tea.KeyEsc, tea.KeyUp, tea.KeyDown, tea.KeyLeft, tea.KeyRight,
		tea.KeyCtrlC, tea.KeyCtrlS, tea.KeyTab, tea.KeyShiftTab, tea.KeyF1,
		tea.KeyPgUp, tea.KeyPgDown, tea.KeyHome, tea.KeyEnd,
	}
	const original = "hello"
	for _, k := range keys {
		msg := tea.KeyMsg{Type: k}
		t.Run(msg.String(), func(t *testing.T) {
			if got := editKey(original, msg); got != original {
				t.Errorf("editKey(%q, %v) = %q, want unchanged", original, msg, got)
			}
		})
	}
}

func TestEditKeyPaste(t *testing.T) {
	tests := []struct {
		name  string
		start string
		paste string
		want  string
	}{
		{"paste into empty", "", "medium roast", "medium roast"},
		{"paste appends", "single ", "origin", "single origin"},
		{"paste clamped at limit", strings.Repeat("a", maxInputLen-3), "abcdef", strings.Repeat("a", maxInputLen-3) + "abc"},
		{"paste rejected at limit", strings.Repeat("a", maxInputLen), "hello", strings.Repeat("a", maxInputLen)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.paste), Paste: true}
			if got := editKey(tc.start, msg); got != tc.want {
				t.Errorf("editKey(%q, paste %q) = %q, want %q", tc.start, tc.paste, got, tc.want)
			}
		})
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"under limit", "hello", 10, "hello"},
		{"at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hell…"},
		{"empty string", "", 5, ""},
		{"single char over", "ab", 1, "…"},
		{"zero width", "abc", 0, ""},
		{"CJK chars", "你好世界", 3, "你好…"},
		{"multi-byte at boundary", "cafés are nice", 5, "café…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncStr(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncStr(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateToHeightLimitsLines(t *testing.T) {
	input := "line1\nline2\nline3\nline4\nline5\n"
	result := truncateToHeight(input, 3)
	if lines := strings.Count(result, "\n"); lines != 3 {
		t.Errorf("expected 3 newlines, got %d", lines)
	}
	if !strings.Contains(result, "line1") {
		t.Error("expected result to contain line1")
	}
	if strings.Contains(result, "line4") {
		t.Error("expected result to NOT contain line4")
	}
}

func TestTruncateToHeightReturnsFullStringWhenWithinLimit(t *testing.T) {
	input := "line1\nline2\n"
	if result := truncateToHeight(input, 10); result != input {
		t.Errorf("expected unchanged string, got %q", result)
	}
}

func TestTruncateToHeightNonPositiveMaxReturnsAll(t *testing.T) {
	input := "line1\nline2\nline3\n"
	for _, max := range []int{0, -1} {
		if result := truncateToHeight(input, max); result != input {
			t.Errorf("truncateToHeight(_, %d) = %q, want unchanged", max, result)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("8f14e45f-ceea-467f-a0e6-1b3c6e1a9d2e"); got != "8f14e45f" {
		t.Errorf("shortID() = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID(short) = %q", got)
	}
}
