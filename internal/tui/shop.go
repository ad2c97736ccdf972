package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beanmart/beanmart/pkg/client"
	"github.com/beanmart/beanmart/pkg/domain"
)

type shopModel struct {
	api       API
	products  []domain.Product
	cursor    int
	search    string
	editing   bool // true when typing in search
	roast     string
	wantQuery string // search of the latest request
	wantRoast string // roast of the latest request
	detail    bool
	err       error
	loading   bool
	width     int
	height    int
}

type productsLoadedMsg struct {
	query    string
	roast    string
	products []domain.Product
	err      error
}

func newShopModel(api API) shopModel {
	return shopModel{api: api, loading: true}
}

func (m shopModel) Init() tea.Cmd {
	return m.load()
}

func (m shopModel) filter() client.ProductFilter {
	return client.ProductFilter{Query: m.search, Roast: m.roast, Limit: pageSize}
}

func (m shopModel) load() tea.Cmd {
	api := m.api
	f := m.filter()
	return func() tea.Msg {
		products, err := api.ListProducts(context.Background(), f)
		return productsLoadedMsg{query: f.Query, roast: f.Roast, products: products, err: err}
	}
}

// reload marks the current filter as the one whose results are wanted and
// starts the request.
func (m shopModel) reload() (shopModel, tea.Cmd) {
	m.loading = true
	m.wantQuery, m.wantRoast = m.search, m.roast
	return m, m.load()
}

func (m shopModel) Update(msg tea.Msg) (shopModel, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		if msg.query != m.wantQuery || msg.roast != m.wantRoast {
			return m, nil // superseded by a later search or roast
		}
		m.loading = false
		m.products = msg.products
		m.err = msg.err
		if m.cursor >= len(m.products) {
			m.cursor = 0
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateSearch(msg)
		}
		if m.detail {
			if msg.String() == "esc" {
				m.detail = false
			}
			return m, nil
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m shopModel) updateSearch(msg tea.KeyMsg) (shopModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		m.cursor = 0
		return m.reload()
	case "esc":
		m.editing = false
		m.search = ""
		return m.reload()
	default:
		m.search = editKey(m.search, msg)
	}
	return m, nil
}

func (m shopModel) updateList(msg tea.KeyMsg) (shopModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if len(m.products) > 0 {
			m.detail = true
		}
	case "/":
		m.editing = true
		m.search = ""
	case "t":
		m.roast = nextRoast(m.roast)
		m.cursor = 0
		return m.reload()
	case "r":
		return m.reload()
	}
	return m, nil
}

// nextRoast cycles "" (all) through every roast level and back to "".
func nextRoast(cur string) string {
	if cur == "" {
		return domain.ValidRoasts[0]
	}
	for i, r := range domain.ValidRoasts {
		if r == cur && i+1 < len(domain.ValidRoasts) {
			return domain.ValidRoasts[i+1]
		}
	}
	return ""
}

func (m shopModel) View() string {
	if m.detail && m.cursor < len(m.products) {
		return m.viewDetail(m.products[m.cursor])
	}

	var b strings.Builder
	b.WriteString("\n")
	switch {
	case m.editing:
		b.WriteString(" " + searchStyle.Render("/ "+m.search+"█"))
	case m.search != "":
		b.WriteString(" " + searchStyle.Render("/ "+m.search))
	default:
		b.WriteString(" " + dimStyle.Render("/ search..."))
	}

	roast := "all roasts"
	if m.roast != "" {
		roast = RoastStyle(m.roast).Render(m.roast)
	} else {
		roast = dimStyle.Render(roast)
	}
	b.WriteString("   " + roast + " " + helpKeyStyle.Render("t") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case m.err != nil:
		b.WriteString(" " + errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
		return b.String()
	case len(m.products) == 0:
		b.WriteString(" " + dimStyle.Render("No coffees match.") + "\n")
		return b.String()
	}

	nameW := max(m.width-40, 16)
	for i, p := range m.products {
		stock := ""
		if !p.InStock {
			stock = metaStyle.Render("sold out")
		}
		line := fmt.Sprintf("%s  %s  %s  %s",
			normalStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(p.Name, nameW))),
			RoastStyle(p.Roast).Render(fmt.Sprintf("%-11s", p.Roast)),
			priceStyle.Render(fmt.Sprintf("%8s", domain.FormatPrice(p.PriceCents))),
			stock,
		)
		if i == m.cursor {
			b.WriteString(selectedRowBg.Render(" > "+line) + "\n")
		} else {
			b.WriteString("   " + line + "\n")
		}
	}
	return b.String()
}

func (m shopModel) viewDetail(p domain.Product) string {
	var b strings.Builder
	b.WriteString("\n " + selectedStyle.Render(p.Name) + "  " + RoastStyle(p.Roast).Render(p.Roast) + "\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render(fmt.Sprintf("%-8s", label)), normalStyle.Render(value))
	}
	row("origin", p.Origin)
	row("notes", strings.Join(p.Notes, ", "))
	row("price", domain.FormatPrice(p.PriceCents))
	if p.WeightGrams > 0 {
		row("weight", fmt.Sprintf("%dg", p.WeightGrams))
	}
	if p.InStock {
		row("stock", "in stock")
	} else {
		row("stock", "sold out")
	}
	if p.Description != "" {
		b.WriteString("\n  " + dimStyle.Render(p.Description) + "\n")
	}
	return b.String()
}
