package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/beanmart/beanmart/pkg/client"
	"github.com/beanmart/beanmart/pkg/domain"
)

// orderStatuses is the filter cycle on the admin view; "" means all.
var orderStatuses = []string{"", "pending", "paid", "shipped", "delivered", "cancelled"}

type adminModel struct {
	api     API
	orders  []domain.Order
	status  string
	cursor  int
	err     error
	loading bool
	width   int
	height  int
}

type adminOrdersLoadedMsg struct {
	status string // filter the request was made with
	orders []domain.Order
	err    error
}

func newAdminModel(api API) adminModel {
	return adminModel{api: api, loading: true}
}

func (m adminModel) Init() tea.Cmd {
	api := m.api
	status := m.status
	return func() tea.Msg {
		orders, err := api.AdminListOrders(context.Background(), status)
		return adminOrdersLoadedMsg{status: status, orders: orders, err: err}
	}
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adminOrdersLoadedMsg:
		if msg.status != m.status {
			return m, nil // superseded by a later filter
		}
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
		case "s":
			m.status = nextStatus(m.status)
			m.cursor = 0
			m.loading = true
			return m, m.Init()
		case "r":
			m.loading = true
			return m, m.Init()
		case "c":
			if m.cursor < len(m.orders) {
				return m, copyCmd("order id", m.orders[m.cursor].ID.String())
			}
		}
	}
	return m, nil
}

func nextStatus(cur string) string {
	for i, s := range orderStatuses {
		if s == cur && i+1 < len(orderStatuses) {
			return orderStatuses[i+1]
		}
	}
	return orderStatuses[0]
}

func (m adminModel) View() string {
	var b strings.Builder

	status := "all"
	if m.status != "" {
		status = m.status
	}
	b.WriteString("\n " + sectionHeaderStyle.Render("ALL ORDERS") + "  " +
		StatusStyle(m.status).Render(status) + " " + helpKeyStyle.Render("s") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(" " + dimStyle.Render("loading...") + "\n")
	case client.IsStatus(m.err, 403):
		b.WriteString(" " + errorStyle.Render("The API refused admin access for this account.") + "\n")
	case m.err != nil:
		b.WriteString(" " + errorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n")
	case len(m.orders) == 0:
		b.WriteString(" " + dimStyle.Render("No orders.") + "\n")
	default:
		total := 0
		for i, o := range m.orders {
			total += o.TotalCents
			b.WriteString(orderRow(o, i == m.cursor, true, m.width) + "\n")
		}
		fmt.Fprintf(&b, "\n %s %s\n",
			metaStyle.Render(fmt.Sprintf("%d orders", len(m.orders))),
			priceStyle.Render(domain.FormatPrice(total)))
	}
	return b.String()
}
