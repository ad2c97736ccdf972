package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beanmart/beanmart/pkg/domain"
)

type accountModel struct {
	api     API
	orders  []domain.Order
	cursor  int
	err     error
	loading bool
	width   int
	height  int
}

type ordersLoadedMsg struct {
	orders []domain.Order
	err    error
}

func newAccountModel(api API) accountModel {
	return accountModel{api: api, loading: true}
}

func (m accountModel) Init() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		orders, err := api.ListOrders(context.Background())
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		m.loading = false
		m.orders = msg.orders
		m.err = msg.err
		if m.cursor >= len(m.orders) {
			m.cursor = 0
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.orders)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// View renders the profile block from the session and the user's orders.
func (m accountModel) View(s domain.Session) string {
	var b strings.Builder

	if !s.IsAuthenticated {
		b.WriteString("\n " + dimStyle.Render("You are signed out.") + "\n")
		b.WriteString(" " + metaStyle.Render("Run: beanmart login") + "\n")
		return b.String()
	}

	u := s.User
	b.WriteString("\n " + sectionHeaderStyle.Render("PROFILE") + "\n")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render(fmt.Sprintf("%-8s", label)), normalStyle.Render(value))
	}
	row("name", u.Name)
	row("email", u.Email)
	row("phone", u.Phone)
	if s.IsAdmin {
		fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render(fmt.Sprintf("%-8s", "access")), adminBadgeStyle.Render("ADMIN"))
	}

	b.WriteString("\n " + sectionHeaderStyle.Render("ORDERS") + "\n")
	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	case len(m.orders) == 0:
		b.WriteString("  " + dimStyle.Render("No orders yet. Press 2 to browse the shop.") + "\n")
	default:
		for i, o := range m.orders {
			b.WriteString(orderRow(o, i == m.cursor, false, m.width) + "\n")
		}
	}
	return b.String()
}

// orderRow renders one order line. withEmail adds the customer column used
// on the admin view.
func orderRow(o domain.Order, selected, withEmail bool, width int) string {
	id := shortID(o.ID.String())
	items := fmt.Sprintf("%d item", o.ItemCount())
	if o.ItemCount() != 1 {
		items += "s"
	}
	line := fmt.Sprintf("%s  %s  %s  %s",
		metaStyle.Render(id),
		StatusStyle(o.Status).Render(fmt.Sprintf("%-9s", o.Status)),
		priceStyle.Render(fmt.Sprintf("%8s", domain.FormatPrice(o.TotalCents))),
		dimStyle.Render(fmt.Sprintf("%-8s", items)),
	)
	if withEmail {
		line += "  " + normalStyle.Render(truncStr(o.Email, max(width-60, 12)))
	}
	line += "  " + metaStyle.Render(formatTime(o.CreatedAt))

	if selected {
		return selectedRowBg.Render(" > " + line)
	}
	return "   " + line
}
