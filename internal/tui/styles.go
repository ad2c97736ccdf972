package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beanmart/beanmart/internal/guard"
)

// Shimmer animation for the BEANMART logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "B E A N M A R T" as a slow wave moving from
// dark roast (#3b2314) up to crema (#e8b86d).
func renderShimmerLogo(frame int) string {
	const text = "BEANMART"
	n := len(text)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)

		phase := t*0.1 - x*3.0
		phase += math.Sin(t*0.023) * 2.0

		b := math.Sin(phase)*0.5 + 0.5
		b = math.Pow(b, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		b = math.Max(0.05, math.Min(1.0, b))

		r := clampByte(59 + b*(232-59))
		g := clampByte(35 + b*(184-35))
		bl := clampByte(20 + b*(109-20))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))

		if i < n-1 {
			out.WriteString("  ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9a8c80"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f2ebe3")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d2c6ba"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b5e54"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9a8c80"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b5e54"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e8b86d")).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a054"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e8b86d"))

	adminBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1c120b")).
			Background(lipgloss.Color("#d4a054")).
			Bold(true).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0605a"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7a6c62"))

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#2a1d15"))

	roastColors = map[string]lipgloss.Color{
		"light":       lipgloss.Color("#e8c48c"),
		"medium":      lipgloss.Color("#c08a4e"),
		"medium-dark": lipgloss.Color("#9a6432"),
		"dark":        lipgloss.Color("#7a4a26"),
		"espresso":    lipgloss.Color("#b0704a"),
		"decaf":       lipgloss.Color("#8aa08a"),
	}

	statusColors = map[string]lipgloss.Color{
		"pending":   lipgloss.Color("#d4a054"),
		"paid":      lipgloss.Color("#60a0e0"),
		"shipped":   lipgloss.Color("#b080d0"),
		"delivered": lipgloss.Color("#6ab07a"),
		"cancelled": lipgloss.Color("#b45555"),
	}
)

// RoastStyle returns a bold style colored for the given roast level.
func RoastStyle(roast string) lipgloss.Style {
	if c, ok := roastColors[roast]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#7a6c62")).Bold(true)
}

// StatusStyle returns a style colored for the given order status.
func StatusStyle(status string) lipgloss.Style {
	if c, ok := statusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#7a6c62"))
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

// helpItems lists the public storefront pages under base. Pages that need a
// session are left out; those are reachable with `o` from their own view.
func helpItems(base string) []helpItem {
	base = strings.TrimRight(base, "/")
	host := strings.TrimPrefix(strings.TrimPrefix(base, "https://"), "http://")
	var items []helpItem
	for _, p := range guard.Pages {
		if p.Auth || p.Name == guard.PageLogin {
			continue
		}
		items = append(items, helpItem{
			label: strings.ToUpper(p.Name[:1]) + p.Name[1:],
			desc:  host + p.Path,
			url:   base + p.Path,
		})
	}
	return items
}

// helpView renders the interactive help overlay with a cursor.
func helpView(items []helpItem, cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e8b86d")).
		Bold(true).
		Render("B E A N M A R T")

	quote := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(`"Fresh roasted, shipped the same week."`)

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sectionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	cursorStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e8b86d"))
	linkDescStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)

	commands := []struct{ cmd, desc string }{
		{"beanmart", "Open the dashboard"},
		{"beanmart login", "Sign in with email and password"},
		{"beanmart logout", "Clear your session"},
		{"beanmart whoami", "Show the signed-in account"},
		{"beanmart products", "Browse the catalog"},
		{"beanmart orders", "List your orders"},
		{"beanmart open <page>", "Open a storefront page"},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n  %s\n\n  %s\n\n", title, quote)

	fmt.Fprintf(&b, "  %s\n", sectionStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(&b, "    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-22s", c.cmd)), descStyle.Render(c.desc))
	}

	fmt.Fprintf(&b, "\n  %s\n", sectionStyle.Render("Links (enter to open)"))
	for i, item := range items {
		label := cmdStyle.Render(fmt.Sprintf("%-22s", item.label))
		prefix := "    "
		if i == cursor {
			label = cursorStyle.Render(fmt.Sprintf("%-22s", item.label))
			prefix = "  > "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, label, linkDescStyle.Render(item.desc))
	}
	return b.String()
}
