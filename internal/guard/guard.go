// Package guard decides access to storefront surfaces from a session
// snapshot. Admin access is decided by the session's IsAdmin flag alone;
// the user's role string is never consulted.
package guard

import (
	"errors"

	"github.com/beanmart/beanmart/pkg/domain"
)

var (
	// ErrUnauthenticated means the surface requires a logged-in session.
	ErrUnauthenticated = errors.New("not logged in (run `beanmart login`)")
	// ErrForbidden means the session lacks admin rights.
	ErrForbidden = errors.New("admin access required")
)

// Landing pages.
const (
	PageLogin   = "login"
	PageAccount = "account"
	PageAdmin   = "admin"
)

// RequireAuthenticated returns ErrUnauthenticated unless s is logged in.
func RequireAuthenticated(s domain.Session) error {
	if !s.IsAuthenticated {
		return ErrUnauthenticated
	}
	return nil
}

// RequireAdmin returns ErrUnauthenticated for anonymous sessions and
// ErrForbidden for logged-in non-admins.
func RequireAdmin(s domain.Session) error {
	if err := RequireAuthenticated(s); err != nil {
		return err
	}
	if !s.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// Landing returns the page a session should land on after login:
// admins go to the dashboard, customers to their account, everyone else
// to the login page.
func Landing(s domain.Session) string {
	switch {
	case !s.IsAuthenticated:
		return PageLogin
	case s.IsAdmin:
		return PageAdmin
	default:
		return PageAccount
	}
}

// Page describes a storefront page and the access it needs.
type Page struct {
	Name  string
	Path  string
	Auth  bool
	Admin bool
}

// Pages lists the storefront pages the CLI can open.
var Pages = []Page{
	{Name: "shop", Path: "/shop"},
	{Name: "guides", Path: "/brewing-guides"},
	{Name: "about", Path: "/about"},
	{Name: PageLogin, Path: "/login"},
	{Name: PageAccount, Path: "/account", Auth: true},
	{Name: "orders", Path: "/account/orders", Auth: true},
	{Name: PageAdmin, Path: "/admin", Auth: true, Admin: true},
}

// ErrUnknownPage is returned by Resolve for names not in Pages.
var ErrUnknownPage = errors.New("unknown page")

// Resolve looks up a page by name and checks s may view it.
func Resolve(s domain.Session, name string) (Page, error) {
	for _, p := range Pages {
		if p.Name != name {
			continue
		}
		switch {
		case p.Admin:
			return p, RequireAdmin(s)
		case p.Auth:
			return p, RequireAuthenticated(s)
		}
		return p, nil
	}
	return Page{}, ErrUnknownPage
}
