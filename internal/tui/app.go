package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/beanmart/beanmart/internal/browser"
	"github.com/beanmart/beanmart/internal/guard"
	"github.com/beanmart/beanmart/pkg/client"
	"github.com/beanmart/beanmart/pkg/domain"
)

// Swapped in tests.
var (
	copyToClipboard = clipboard.WriteAll
	openURL         = browser.Open
)

// Session is the part of the session store the dashboard reads and mutates.
type Session interface {
	Snapshot() domain.Session
	SetUser(u *domain.User) error
	Logout()
}

// API is the storefront API surface the dashboard calls.
type API interface {
	GetMe(ctx context.Context) (*domain.User, error)
	ListProducts(ctx context.Context, f client.ProductFilter) ([]domain.Product, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	AdminListOrders(ctx context.Context, status string) ([]domain.Order, error)
}

type view int

const (
	viewAccount view = iota
	viewShop
	viewAdmin
)

// meLoadedMsg carries the result of GetMe.
type meLoadedMsg struct {
	user *domain.User
	err  error
}

type copyResultMsg struct {
	what string
	err  error
}

type openResultMsg struct {
	url string
	err error
}

// App is the root Bubbletea model.
type App struct {
	session    Session
	api        API
	storefront string
	view       view
	account    accountModel
	shop       shopModel
	admin      adminModel
	helpOpen   bool
	helpCursor int
	help       []helpItem
	flash      string
	loggedOut  bool
	width      int
	height     int
	frame      int // logo shimmer animation frame
}

// NewApp creates the dashboard. storefront is the base URL of the web
// storefront used for help links and the `o` key.
func NewApp(s Session, api API, storefront string) App {
	return App{
		session:    s,
		api:        api,
		storefront: strings.TrimRight(storefront, "/"),
		account:    newAccountModel(api),
		shop:       newShopModel(api),
		admin:      newAdminModel(api),
		help:       helpItems(storefront),
	}
}

// LoggedOut reports whether the dashboard ended the session before quitting.
func (a App) LoggedOut() bool {
	return a.loggedOut
}

func (a App) Init() tea.Cmd {
	if !a.session.Snapshot().IsAuthenticated {
		return shimmerTickCmd()
	}
	return tea.Batch(shimmerTickCmd(), a.loadMe(), a.account.Init())
}

func (a App) loadMe() tea.Cmd {
	api := a.api
	return func() tea.Msg {
		u, err := api.GetMe(context.Background())
		return meLoadedMsg{user: u, err: err}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + flash(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.account, _ = a.account.Update(bodyMsg)
		a.shop, _ = a.shop.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case meLoadedMsg:
		return a.applyMe(msg)

	case copyResultMsg:
		if msg.err != nil {
			a.flash = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			a.flash = "copied " + msg.what
		}
		return a, nil

	case openResultMsg:
		if msg.err != nil {
			a.flash = fmt.Sprintf("open failed: %v", msg.err)
		} else {
			a.flash = "opened " + msg.url
		}
		return a, nil

	case tea.KeyMsg:
		a.flash = ""
		if a.helpOpen {
			return a.updateHelp(msg)
		}
		if !a.isEditing() {
			if next, cmd, handled := a.updateGlobal(msg); handled {
				return next, cmd
			}
		}
		return a.routeKey(msg)
	}

	// Load results go to every view; each ignores what it did not ask for.
	var cmds [3]tea.Cmd
	a.account, cmds[0] = a.account.Update(msg)
	a.shop, cmds[1] = a.shop.Update(msg)
	a.admin, cmds[2] = a.admin.Update(msg)
	return a, tea.Batch(cmds[:]...)
}

// applyMe folds a profile refresh into the session. A rejected token ends
// the session; any other failure leaves it as it was.
func (a App) applyMe(msg meLoadedMsg) (tea.Model, tea.Cmd) {
	switch {
	case client.IsUnauthorized(msg.err):
		a.session.Logout()
		a.loggedOut = true
		return a, tea.Quit
	case msg.err != nil:
		a.flash = fmt.Sprintf("refresh failed: %v", msg.err)
	case msg.user != nil:
		if err := a.session.SetUser(msg.user); err != nil {
			a.flash = fmt.Sprintf("refresh failed: %v", err)
			return a, nil
		}
		if a.view == viewAdmin && !a.session.Snapshot().IsAdmin {
			a.view = viewAccount
			a.flash = guard.ErrForbidden.Error()
		}
	}
	return a, nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "esc":
		a.helpOpen = false
	case "q", "ctrl+c":
		return a, tea.Quit
	case "j", "down":
		if a.helpCursor < len(a.help)-1 {
			a.helpCursor++
		}
	case "k", "up":
		if a.helpCursor > 0 {
			a.helpCursor--
		}
	case "enter":
		if a.helpCursor < len(a.help) {
			return a, openCmd(a.help[a.helpCursor].url)
		}
	}
	return a, nil
}

func (a App) updateGlobal(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	snap := a.session.Snapshot()
	switch msg.String() {
	case "h":
		a.helpOpen = true
		a.helpCursor = 0
		return a, nil, true
	case "q", "ctrl+c":
		return a, tea.Quit, true
	case "L":
		a.session.Logout()
		a.loggedOut = true
		return a, tea.Quit, true
	case "1":
		if a.view != viewAccount {
			a.view = viewAccount
			return a, a.account.Init(), true
		}
		return a, nil, true
	case "2":
		if a.view != viewShop {
			a.view = viewShop
			return a, a.shop.Init(), true
		}
		return a, nil, true
	case "3":
		if err := guard.RequireAdmin(snap); err != nil {
			a.flash = err.Error()
			return a, nil, true
		}
		if a.view != viewAdmin {
			a.view = viewAdmin
			return a, a.admin.Init(), true
		}
		return a, nil, true
	case "o":
		p, err := guard.Resolve(snap, a.pageName())
		if err != nil {
			a.flash = err.Error()
			return a, nil, true
		}
		return a, openCmd(a.storefront + p.Path), true
	case "c":
		if a.view == viewAccount {
			if snap.User == nil {
				a.flash = guard.ErrUnauthenticated.Error()
				return a, nil, true
			}
			return a, copyCmd("email", snap.User.Email), true
		}
	case "r":
		if a.view == viewAccount && snap.IsAuthenticated {
			a.account.loading = true
			return a, tea.Batch(a.loadMe(), a.account.Init()), true
		}
	}
	return a, nil, false
}

func (a App) routeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewAccount:
		a.account, cmd = a.account.Update(msg)
	case viewShop:
		a.shop, cmd = a.shop.Update(msg)
	case viewAdmin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

func (a App) isEditing() bool {
	return a.view == viewShop && a.shop.editing
}

func (a App) pageName() string {
	switch a.view {
	case viewShop:
		return "shop"
	case viewAdmin:
		return guard.PageAdmin
	default:
		return guard.PageAccount
	}
}

func copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{what: what, err: copyToClipboard(text)}
	}
}

func openCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return openResultMsg{url: url, err: openURL(url)}
	}
}

func (a App) View() string {
	snap := a.session.Snapshot()

	logo := renderShimmerLogo(a.frame)
	header := centered(logo, a.width)

	var who string
	switch {
	case snap.IsAuthenticated && snap.IsAdmin:
		who = metaStyle.Render(snap.User.DisplayName()+" . ") + adminBadgeStyle.Render("ADMIN")
	case snap.IsAuthenticated:
		who = metaStyle.Render(snap.User.DisplayName())
	default:
		who = dimStyle.Render("signed out")
	}
	header += "\n" + centered(who, a.width)

	type tabEntry struct {
		key  string
		name string
		v    view
	}
	tabs := []tabEntry{
		{"1", "Account", viewAccount},
		{"2", "Shop", viewShop},
	}
	if snap.IsAdmin {
		tabs = append(tabs, tabEntry{"3", "Admin", viewAdmin})
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.view {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	tabKeys := "1-2"
	if snap.IsAdmin {
		tabKeys = "1-3"
	}

	var body, help string
	switch a.view {
	case viewAccount:
		body = a.account.View(snap)
		help = " " + helpEntry(tabKeys, "tabs") + "  " + helpEntry("r", "refresh") + "  " + helpEntry("c", "copy email") + "  " + helpEntry("o", "open") + "  " + helpEntry("L", "logout") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case viewShop:
		body = a.shop.View()
		switch {
		case a.shop.editing:
			help = " " + helpEntry("enter", "search") + "  " + helpEntry("esc", "clear")
		case a.shop.detail:
			help = " " + helpEntry(tabKeys, "tabs") + "  " + helpEntry("o", "open") + "  " + helpEntry("esc", "back")
		default:
			help = " " + helpEntry(tabKeys, "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("/", "search") + "  " + helpEntry("t", "roast") + "  " + helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case viewAdmin:
		body = a.admin.View()
		help = " " + helpEntry(tabKeys, "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("s", "status") + "  " + helpEntry("c", "copy id") + "  " + helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	}

	if a.helpOpen {
		body = helpView(a.help, a.helpCursor)
		help = " " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "open") + "  " + helpEntry("esc", "close")
	}

	flash := ""
	if a.flash != "" {
		flash = " " + accentStyle.Render(a.flash)
	}

	const chrome = 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar.String(), body, flash, help)
}

func centered(s string, width int) string {
	pad := max((width-lipgloss.Width(s))/2, 0)
	return strings.Repeat(" ", pad) + s
}
